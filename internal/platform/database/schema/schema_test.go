// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
)

func TestList(t *testing.T) {
	assert.Equal(t, "id, name, slug", schema.List("", schema.CoreGenre.Columns()...))
	assert.Equal(t, "g.id, g.slug", schema.List("g", schema.CoreGenre.ID, schema.CoreGenre.Slug))
}
