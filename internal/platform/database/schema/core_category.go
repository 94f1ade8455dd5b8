// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreTaxonTable describes the shape shared by 'core.category' and 'core.genre'.
type CoreTaxonTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// CoreCategory is the schema definition for core.category
var CoreCategory = CoreTaxonTable{
	Table: "core.category",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

// CoreGenre is the schema definition for core.genre
var CoreGenre = CoreTaxonTable{
	Table: "core.genre",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

// Columns returns all standard column names
func (t CoreTaxonTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug}
}
