// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names every table and column used by the repositories, so
// SQL is assembled from one source of truth instead of scattered literals.
package schema

import "strings"

// List joins column names with an optional table alias prefix.
func List(alias string, columns ...string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}
	prefixed := make([]string, len(columns))
	for i, column := range columns {
		prefixed[i] = alias + "." + column
	}
	return strings.Join(prefixed, ", ")
}
