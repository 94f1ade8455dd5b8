// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"?page=3&limit=25", pagination.Params{Page: 3, Limit: 25}},
		{"?page=-1&limit=1000", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"?page=abc", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/titles/"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(r))
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 3, Limit: 10}.Offset())
	assert.True(t, pagination.All.Unbounded())
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 2, Limit: 10}, 21)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 21, meta.Total)

	assert.Equal(t, 0, pagination.NewMeta(pagination.All, 5).TotalPages)
}
