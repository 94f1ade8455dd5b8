// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package taxonomy manages the two flat classification lists of the catalogue:
categories and genres.

Both share one shape (name plus unique slug) and one contract: anyone may
list them, admins may create and delete them, and no one may fetch or edit a
single entry. A [Kind] value selects which list a repository and service
operate on.
*/
package taxonomy

import "github.com/taibuivan/yamdb/internal/platform/database/schema"

// # Kinds

// Kind binds a taxonomy list to its table and public names.
type Kind struct {
	// Resource names the entity in NotFound errors and log lines.
	Resource string

	// Path is the URL segment under /api/v1.
	Path string

	table schema.CoreTaxonTable
}

var (
	// Category classifies a title by medium (film, book, music...).
	Category = Kind{
		Resource: "Category",
		Path:     "categories",
		table:    schema.CoreCategory,
	}

	// Genre tags a title with any number of genres.
	Genre = Kind{
		Resource: "Genre",
		Path:     "genres",
		table:    schema.CoreGenre,
	}
)

// # Domain Entities

// Taxon is one category or genre.
type Taxon struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// OwnerID implements [access.Owned]. Taxa have no author.
func (t *Taxon) OwnerID() string { return "" }

// Filter narrows a taxonomy listing.
type Filter struct {
	// Search matches a case-insensitive substring of the name.
	Search string
}

// Input is the create payload. A nil or empty Slug is derived from Name.
type Input struct {
	Name string  `json:"name"`
	Slug *string `json:"slug"`
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"

	// ParamSlug is the URL parameter addressing one entry.
	ParamSlug = "slug"

	// ParamSearch filters the list by name substring.
	ParamSearch = "search"
)
