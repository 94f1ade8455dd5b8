// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dataload_test

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/dataload"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

func file(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

func fixtures() fstest.MapFS {
	return fstest.MapFS{
		dataload.FileUsers: file("id,username,email,role,bio,first_name,last_name,is_superuser\n" +
			"100,bingobongo,bingobongo@yamdb.fake,user,,,,false\n" +
			"101,capt_obvious,capt_obvious@yamdb.fake,admin,Admin bio,Captain,Obvious,\n" +
			"102,root,root@yamdb.fake,admin,,,,true\n"),
		dataload.FileCategories: file("id,name,slug\n1,Фильм,movie\n2,Книга,book\n"),
		dataload.FileGenres:     file("id,name,slug\n1,Драма,drama\n2,Комедия,comedy\n"),
		dataload.FileTitles:     file("id,name,year,category\n1,Побег из Шоушенка,1994,1\n2,Безымянное,1999,\n"),
		dataload.FileGenreTitle: file("id,title_id,genre_id\n1,1,1\n2,1,2\n3,1,2\n"),
		dataload.FileReviews:    file("id,title_id,text,author,score,pub_date\n1,1,Ещё раз,100,10,2019-09-24T21:08:21.567Z\n"),
		dataload.FileComments:   file("id,review_id,text,author,pub_date\n1,1,Согласен,101,2019-09-24 21:08:21\n"),
	}
}

func TestRead(t *testing.T) {
	dataset, err := dataload.Read(fixtures())
	require.NoError(t, err)

	t.Run("users", func(t *testing.T) {
		require.Len(t, dataset.Users, 2, "superuser rows are skipped")
		admin := dataset.Users[1]
		assert.Equal(t, uuid.FromLegacy("users", "101"), admin.ID)
		assert.Equal(t, sec.RoleAdmin, admin.Role)
		assert.Equal(t, "Captain", admin.FirstName)
		assert.Equal(t, "Admin bio", admin.Bio)
	})

	t.Run("titles reference categories", func(t *testing.T) {
		require.Len(t, dataset.Titles, 2)
		require.NotNil(t, dataset.Titles[0].CategoryID)
		assert.Equal(t, dataset.Categories[0].ID, *dataset.Titles[0].CategoryID)
		assert.Nil(t, dataset.Titles[1].CategoryID)
		assert.Equal(t, 1994, dataset.Titles[0].Year)
	})

	t.Run("genre links are deduplicated", func(t *testing.T) {
		assert.Len(t, dataset.GenreTitle, 2)
		assert.Equal(t, dataset.Genres[1].ID, dataset.GenreTitle[1].GenreID)
	})

	t.Run("reviews and comments keep references", func(t *testing.T) {
		require.Len(t, dataset.Reviews, 1)
		review := dataset.Reviews[0]
		assert.Equal(t, dataset.Titles[0].ID, review.TitleID)
		assert.Equal(t, dataset.Users[0].ID, review.AuthorID)
		assert.Equal(t, 10, review.Score)
		assert.Equal(t, 2019, review.PubDate.Year())

		require.Len(t, dataset.Comments, 1)
		comment := dataset.Comments[0]
		assert.Equal(t, review.ID, comment.ReviewID)
		assert.Equal(t, time.Date(2019, time.September, 24, 21, 8, 21, 0, time.UTC), comment.PubDate)
	})

	assert.Equal(t, dataload.Counts{
		Users: 2, Categories: 2, Genres: 2, Titles: 2, GenreTitle: 2, Reviews: 1, Comments: 1,
	}, dataset.Summary())
}

func TestRead_MissingFilesAreEmpty(t *testing.T) {
	dataset, err := dataload.Read(fstest.MapFS{
		dataload.FileCategories: file("slug,name,id\nmovie,Фильм,1\n"),
	})
	require.NoError(t, err)

	assert.Empty(t, dataset.Users)
	assert.Empty(t, dataset.Titles)
	require.Len(t, dataset.Categories, 1)
	assert.Equal(t, "movie", dataset.Categories[0].Slug)
}

func TestRead_HeaderWithByteOrderMark(t *testing.T) {
	dataset, err := dataload.Read(fstest.MapFS{
		dataload.FileGenres: file("\ufeffID,Name,Slug\n7,Drama,drama\n"),
	})
	require.NoError(t, err)
	require.Len(t, dataset.Genres, 1)
	assert.Equal(t, uuid.FromLegacy("genre", "7"), dataset.Genres[0].ID)
}

func TestRead_Rejects(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
		message string
	}{
		{"unknown role", dataload.FileUsers, "id,username,email,role\n1,a,a@b.c,owner\n", `unknown role "owner"`},
		{"reserved username", dataload.FileUsers, "id,username,email\n1,me,me@b.c\n", "reserved"},
		{"missing email", dataload.FileUsers, "id,username,email\n1,a,\n", `column "email" is empty`},
		{"bad year", dataload.FileTitles, "id,name,year\n1,A,soon\n", "not an integer"},
		{"early year", dataload.FileTitles, "id,name,year\n1,A,1850\n", "before 1900"},
		{"score range", dataload.FileReviews, "id,title_id,text,author,score,pub_date\n1,1,x,1,11,2020-01-01\n", "outside 1..10"},
		{"bad timestamp", dataload.FileComments, "id,review_id,text,author,pub_date\n1,1,x,1,yesterday\n", "not a timestamp"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataload.Read(fstest.MapFS{tc.file: file(tc.content)})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.file+" line 2")
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}
