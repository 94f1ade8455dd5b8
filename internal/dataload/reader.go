// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dataload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/convert"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// timestampLayouts are tried in order when parsing pub_date.
var timestampLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// # Table Access

// table is a parsed CSV file addressed by header name.
type table struct {
	file    string
	columns map[string]int
	rows    [][]string
}

// cell returns the first non-empty value among the given column aliases.
func (t *table) cell(row []string, names ...string) string {
	for _, name := range names {
		if index, ok := t.columns[name]; ok && index < len(row) {
			if value := strings.TrimSpace(row[index]); value != "" {
				return value
			}
		}
	}
	return ""
}

// required is [table.cell] that fails on an empty value.
func (t *table) required(line int, row []string, names ...string) (string, error) {
	value := t.cell(row, names...)
	if value == "" {
		return "", t.errorf(line, "column %q is empty", names[0])
	}
	return value, nil
}

func (t *table) integer(line int, row []string, names ...string) (int, error) {
	raw, err := t.required(line, row, names...)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, t.errorf(line, "column %q: %q is not an integer", names[0], raw)
	}
	return value, nil
}

func (t *table) timestamp(line int, row []string, names ...string) (time.Time, error) {
	raw, err := t.required(line, row, names...)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, t.errorf(line, "column %q: %q is not a timestamp", names[0], raw)
}

func (t *table) errorf(line int, format string, args ...any) error {
	return fmt.Errorf("dataload: %s line %d: %s", t.file, line, fmt.Sprintf(format, args...))
}

// each calls fn for every data row with its 1-based file line.
func (t *table) each(fn func(line int, row []string) error) error {
	if t == nil {
		return nil
	}
	for index, row := range t.rows {
		if err := fn(index+2, row); err != nil {
			return err
		}
	}
	return nil
}

// openTable parses file from fsys. A missing file yields a nil table.
func openTable(fsys fs.FS, file string) (*table, error) {
	handle, err := fsys.Open(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dataload: open %s: %w", file, err)
	}
	defer handle.Close()

	reader := csv.NewReader(handle)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dataload: read %s header: %w", file, err)
	}

	columns := make(map[string]int, len(header))
	for index, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[name] = index
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("dataload: read %s: %w", file, err)
	}

	return &table{file: file, columns: columns, rows: rows}, nil
}

// # Dataset Parsing

// Read parses every known fixture file found in fsys. Missing files are
// treated as empty tables.
func Read(fsys fs.FS) (*Dataset, error) {
	dataset := &Dataset{}

	steps := []struct {
		file  string
		parse func(*table) error
	}{
		{FileUsers, dataset.readUsers},
		{FileCategories, func(t *table) error { return dataset.readTaxa(t, kindCategory, &dataset.Categories) }},
		{FileGenres, func(t *table) error { return dataset.readTaxa(t, kindGenre, &dataset.Genres) }},
		{FileTitles, dataset.readTitles},
		{FileGenreTitle, dataset.readGenreTitle},
		{FileReviews, dataset.readReviews},
		{FileComments, dataset.readComments},
	}

	for _, step := range steps {
		parsed, err := openTable(fsys, step.file)
		if err != nil {
			return nil, err
		}
		if err := step.parse(parsed); err != nil {
			return nil, err
		}
	}

	return dataset, nil
}

func (dataset *Dataset) readUsers(t *table) error {
	return t.each(func(line int, row []string) error {
		// Superusers are managed with createsuperuser only.
		if convert.ToBool(t.cell(row, "is_superuser")) {
			return nil
		}

		id, err := t.required(line, row, "id")
		if err != nil {
			return err
		}
		username, err := t.required(line, row, "username")
		if err != nil {
			return err
		}
		email, err := t.required(line, row, "email")
		if err != nil {
			return err
		}

		role := sec.RoleUser
		if raw := t.cell(row, "role"); raw != "" {
			role = sec.UserRole(strings.ToLower(raw))
		}
		if !role.Valid() {
			return t.errorf(line, "unknown role %q", role)
		}
		if username == constants.ReservedUsername {
			return t.errorf(line, "username %q is reserved", username)
		}

		dataset.Users = append(dataset.Users, User{
			ID:        uuid.FromLegacy(kindUser, id),
			Username:  username,
			Email:     email,
			FirstName: t.cell(row, "first_name", "firstname"),
			LastName:  t.cell(row, "last_name", "lastname"),
			Bio:       t.cell(row, "bio"),
			Role:      role,
		})
		return nil
	})
}

func (dataset *Dataset) readTaxa(t *table, kind string, into *[]Taxon) error {
	return t.each(func(line int, row []string) error {
		id, err := t.required(line, row, "id")
		if err != nil {
			return err
		}
		name, err := t.required(line, row, "name")
		if err != nil {
			return err
		}
		slug, err := t.required(line, row, "slug")
		if err != nil {
			return err
		}

		*into = append(*into, Taxon{ID: uuid.FromLegacy(kind, id), Name: name, Slug: slug})
		return nil
	})
}

func (dataset *Dataset) readTitles(t *table) error {
	return t.each(func(line int, row []string) error {
		id, err := t.required(line, row, "id")
		if err != nil {
			return err
		}
		name, err := t.required(line, row, "name")
		if err != nil {
			return err
		}
		year, err := t.integer(line, row, "year")
		if err != nil {
			return err
		}
		if year < constants.MinTitleYear {
			return t.errorf(line, "year %d is before %d", year, constants.MinTitleYear)
		}

		title := Title{ID: uuid.FromLegacy(kindTitle, id), Name: name, Year: year}
		if description := t.cell(row, "description"); description != "" {
			title.Description = &description
		}
		if category := t.cell(row, "category", "category_id"); category != "" {
			categoryID := uuid.FromLegacy(kindCategory, category)
			title.CategoryID = &categoryID
		}

		dataset.Titles = append(dataset.Titles, title)
		return nil
	})
}

func (dataset *Dataset) readGenreTitle(t *table) error {
	seen := make(map[GenreTitle]bool)

	return t.each(func(line int, row []string) error {
		titleID, err := t.required(line, row, "title_id", "title")
		if err != nil {
			return err
		}
		genreID, err := t.required(line, row, "genre_id", "genre")
		if err != nil {
			return err
		}

		link := GenreTitle{
			TitleID: uuid.FromLegacy(kindTitle, titleID),
			GenreID: uuid.FromLegacy(kindGenre, genreID),
		}
		if !seen[link] {
			seen[link] = true
			dataset.GenreTitle = append(dataset.GenreTitle, link)
		}
		return nil
	})
}

func (dataset *Dataset) readReviews(t *table) error {
	return t.each(func(line int, row []string) error {
		id, err := t.required(line, row, "id")
		if err != nil {
			return err
		}
		titleID, err := t.required(line, row, "title_id", "title")
		if err != nil {
			return err
		}
		authorID, err := t.required(line, row, "author", "author_id")
		if err != nil {
			return err
		}
		text, err := t.required(line, row, "text")
		if err != nil {
			return err
		}
		score, err := t.integer(line, row, "score")
		if err != nil {
			return err
		}
		if score < constants.MinScore || score > constants.MaxScore {
			return t.errorf(line, "score %d is outside %d..%d", score, constants.MinScore, constants.MaxScore)
		}
		pubDate, err := t.timestamp(line, row, "pub_date")
		if err != nil {
			return err
		}

		dataset.Reviews = append(dataset.Reviews, Review{
			ID:       uuid.FromLegacy(kindReview, id),
			TitleID:  uuid.FromLegacy(kindTitle, titleID),
			AuthorID: uuid.FromLegacy(kindUser, authorID),
			Text:     text,
			Score:    score,
			PubDate:  pubDate,
		})
		return nil
	})
}

func (dataset *Dataset) readComments(t *table) error {
	return t.each(func(line int, row []string) error {
		id, err := t.required(line, row, "id")
		if err != nil {
			return err
		}
		reviewID, err := t.required(line, row, "review_id", "review")
		if err != nil {
			return err
		}
		authorID, err := t.required(line, row, "author", "author_id")
		if err != nil {
			return err
		}
		text, err := t.required(line, row, "text")
		if err != nil {
			return err
		}
		pubDate, err := t.timestamp(line, row, "pub_date")
		if err != nil {
			return err
		}

		dataset.Comments = append(dataset.Comments, Comment{
			ID:       uuid.FromLegacy(kindComment, id),
			ReviewID: uuid.FromLegacy(kindReview, reviewID),
			AuthorID: uuid.FromLegacy(kindUser, authorID),
			Text:     text,
			PubDate:  pubDate,
		})
		return nil
	})
}

// Summary returns the row counts of a parsed dataset.
func (dataset *Dataset) Summary() Counts {
	return Counts{
		Users:      int64(len(dataset.Users)),
		Categories: int64(len(dataset.Categories)),
		Genres:     int64(len(dataset.Genres)),
		Titles:     int64(len(dataset.Titles)),
		GenreTitle: int64(len(dataset.GenreTitle)),
		Reviews:    int64(len(dataset.Reviews)),
		Comments:   int64(len(dataset.Comments)),
	}
}
