// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
)

func TestRatingOf(t *testing.T) {
	assert.Nil(t, ratingOf(0, 0))

	tests := []struct {
		sum, count, want int
	}{
		{18, 2, 9},
		{10, 1, 10},
		{19, 2, 9},
		{1, 3, 0},
	}
	for _, tt := range tests {
		got := ratingOf(tt.sum, tt.count)
		require.NotNil(t, got)
		assert.Equal(t, tt.want, *got)
	}
}

func TestRecord_MarshalJSON(t *testing.T) {
	record := &Record{
		ID:     "t1",
		Name:   "Solaris",
		Year:   1972,
		Genres: []*taxonomy.Taxon{{ID: "g1", Name: "Drama", Slug: "drama"}},
		Category: &taxonomy.Taxon{
			ID: "c1", Name: "Film", Slug: "film",
		},
	}

	raw, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"t1","name":"Solaris","year":1972,"description":null,"genre":["drama"],"category":"film"}`, string(raw))

	raw, err = json.Marshal(&Record{ID: "t2", Name: "Untitled", Year: 2000})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"t2","name":"Untitled","year":2000,"description":null,"genre":[],"category":null}`, string(raw))
}
