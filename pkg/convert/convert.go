// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for query parameters.

Filters are optional, so a missing or malformed value simply disables the
filter instead of failing the request.
*/
package convert

import (
	"strconv"
	"strings"
)

// ToIntD converts a string to an int, returning def if parsing fails or the
// string is empty.
func ToIntD(str string, def int) int {
	if str == "" {
		return def
	}
	if v, err := strconv.Atoi(strings.TrimSpace(str)); err == nil {
		return v
	}
	return def
}

// ToIntPtr converts a string to *int. Empty or malformed input yields nil.
func ToIntPtr(str string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return nil
	}
	return &v
}

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return v
}
