// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/pkg/uuid"
)

func TestNew(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	assert.True(t, uuid.Valid(first))
	assert.NotEqual(t, first, second)
}

func TestValid(t *testing.T) {
	assert.True(t, uuid.Valid("0190a6c4-7a5e-7c3b-9f1e-2d4a6b8c0e12"))
	assert.False(t, uuid.Valid("42"))
	assert.False(t, uuid.Valid(""))
}

func TestFromLegacy(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, uuid.FromLegacy("titles", "1"), uuid.FromLegacy("titles", "1"))
		assert.True(t, uuid.Valid(uuid.FromLegacy("titles", "1")))
	})

	t.Run("scoped by kind", func(t *testing.T) {
		assert.NotEqual(t, uuid.FromLegacy("titles", "1"), uuid.FromLegacy("users", "1"))
	})

	t.Run("keeps existing uuid", func(t *testing.T) {
		id := "0190A6C4-7A5E-7C3B-9F1E-2D4A6B8C0E12"
		assert.Equal(t, "0190a6c4-7a5e-7c3b-9f1e-2d4a6b8c0e12", uuid.FromLegacy("titles", id))
	})
}
