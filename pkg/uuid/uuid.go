// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for every table.

Version 7 values sort by creation time, which keeps PostgreSQL B-tree indexes
append-only and lets "newest first" listings fall back on the primary key.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}

// legacyNamespace scopes identifiers derived from integer keys of imported fixtures.
var legacyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("yamdb:legacy"))

// FromLegacy maps an imported key to a stable UUID.
//
// Keys that already parse as UUIDs are returned in canonical form. Any other
// key is hashed together with kind, so "1" of users and "1" of titles differ.
func FromLegacy(kind, key string) string {
	if id, err := uuid.Parse(key); err == nil {
		return id.String()
	}
	return uuid.NewSHA1(legacyNamespace, []byte(kind+":"+key)).String()
}
