// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package title manages catalogue works: films, books, songs and anything else
that can be reviewed.

A title belongs to at most one category and to any number of genres. Both are
written by slug and read back expanded. The rating is never stored; it is the
integer mean of the current review scores, recomputed on every read and
absent while the title has no reviews.
*/
package title

import (
	"encoding/json"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/pkg/slice"
)

// resourceTitle names the entity in NotFound errors.
const resourceTitle = "Title"

// # Domain Entities

// Title is the read view returned by list and retrieve.
type Title struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *int              `json:"rating"`
	Description *string           `json:"description"`
	Genres      []*taxonomy.Taxon `json:"genre"`
	Category    *taxonomy.Taxon   `json:"category"`
}

// OwnerID implements [access.Owned]. Titles have no author.
func (t *Title) OwnerID() string { return "" }

// Record is the writable shape of a title with its references resolved.
// It serialises the way clients write it: genres and category as slugs.
type Record struct {
	ID          string
	Name        string
	Year        int
	Description *string
	Genres      []*taxonomy.Taxon
	Category    *taxonomy.Taxon
}

// OwnerID implements [access.Owned].
func (r *Record) OwnerID() string { return "" }

// MarshalJSON renders the write view.
func (r *Record) MarshalJSON() ([]byte, error) {
	view := struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Year        int      `json:"year"`
		Description *string  `json:"description"`
		Genre       []string `json:"genre"`
		Category    *string  `json:"category"`
	}{
		ID:          r.ID,
		Name:        r.Name,
		Year:        r.Year,
		Description: r.Description,
		Genre:       slice.Map(r.Genres, func(g *taxonomy.Taxon) string { return g.Slug }),
	}
	if r.Category != nil {
		view.Category = &r.Category.Slug
	}
	return json.Marshal(view)
}

// recordOf converts a read view back into its writable shape.
func recordOf(t *Title) *Record {
	return &Record{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Genres:      t.Genres,
		Category:    t.Category,
	}
}

// ratingOf returns the truncated mean of count scores summing to sum, or nil
// when there are none.
func ratingOf(sum, count int) *int {
	if count == 0 {
		return nil
	}
	rating := sum / count
	return &rating
}

// # Request Payloads

// Input is the create and update payload. On update nil fields are left
// unchanged and a present genre list replaces the current set.
type Input struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category"`
}

// Filter narrows a title listing. Zero values match everything.
type Filter struct {
	// Genre and Category match a slug exactly.
	Genre    string
	Category string

	// Name matches a case-insensitive substring.
	Name string

	// Year matches exactly when non-nil.
	Year *int
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldGenre       = "genre"
	FieldCategory    = "category"

	// ParamTitleID is the URL parameter addressing one title.
	ParamTitleID = "title_id"
)
