// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreTitleTable represents the 'core.title' table
type CoreTitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	Description string
	CategoryID  string
}

// CoreTitle is the schema definition for core.title
var CoreTitle = CoreTitleTable{
	Table:       "core.title",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	Description: "description",
	CategoryID:  "categoryid",
}

// Columns returns all standard column names
func (t CoreTitleTable) Columns() []string {
	return []string{t.ID, t.Name, t.Year, t.Description, t.CategoryID}
}

// CoreGenreTitleTable represents the 'core.genretitle' join table
type CoreGenreTitleTable struct {
	Table   string
	TitleID string
	GenreID string
}

// CoreGenreTitle is the schema definition for core.genretitle
var CoreGenreTitle = CoreGenreTitleTable{
	Table:   "core.genretitle",
	TitleID: "titleid",
	GenreID: "genreid",
}

// Columns returns all standard column names
func (t CoreGenreTitleTable) Columns() []string {
	return []string{t.TitleID, t.GenreID}
}
