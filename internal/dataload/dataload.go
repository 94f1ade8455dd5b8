// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dataload moves fixture data between CSV files and the database.

A fixture directory holds one CSV file per table. Files are header driven, so
column order does not matter and unknown columns are ignored. Integer keys of
the source rows are mapped to stable UUIDs, which keeps cross-file references
intact across repeated loads.

Usage:

	dataset, err := dataload.Read(os.DirFS("static/data"))
	counts, err := dataload.NewLoader(pool, logger).Load(ctx, dataset)

Superuser accounts are never touched by either direction.
*/
package dataload

import (
	"time"

	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// # Fixture Files

const (
	FileUsers      = "users.csv"
	FileCategories = "category.csv"
	FileGenres     = "genre.csv"
	FileTitles     = "titles.csv"
	FileGenreTitle = "genre_title.csv"
	FileReviews    = "review.csv"
	FileComments   = "comments.csv"
)

// Identifier scopes for legacy keys.
const (
	kindUser     = "users"
	kindCategory = "category"
	kindGenre    = "genre"
	kindTitle    = "titles"
	kindReview   = "review"
	kindComment  = "comments"
)

// # Records

// User is one row of users.csv.
type User struct {
	ID        string
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      sec.UserRole
}

// Taxon is one row of category.csv or genre.csv.
type Taxon struct {
	ID   string
	Name string
	Slug string
}

// Title is one row of titles.csv.
type Title struct {
	ID          string
	Name        string
	Year        int
	Description *string
	CategoryID  *string
}

// GenreTitle links a title to a genre.
type GenreTitle struct {
	TitleID string
	GenreID string
}

// Review is one row of review.csv.
type Review struct {
	ID       string
	TitleID  string
	AuthorID string
	Text     string
	Score    int
	PubDate  time.Time
}

// Comment is one row of comments.csv.
type Comment struct {
	ID       string
	ReviewID string
	AuthorID string
	Text     string
	PubDate  time.Time
}

// Dataset is the parsed content of a fixture directory.
type Dataset struct {
	Users      []User
	Categories []Taxon
	Genres     []Taxon
	Titles     []Title
	GenreTitle []GenreTitle
	Reviews    []Review
	Comments   []Comment
}

// Counts reports how many rows of each table were written.
type Counts struct {
	Users      int64
	Categories int64
	Genres     int64
	Titles     int64
	GenreTitle int64
	Reviews    int64
	Comments   int64
}
