// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Bio          string
	Role         string
	IsSuperuser  string
	PasswordHash string
	DateJoined   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	FirstName:    "firstname",
	LastName:     "lastname",
	Bio:          "bio",
	Role:         "role",
	IsSuperuser:  "issuperuser",
	PasswordHash: "passwordhash",
	DateJoined:   "datejoined",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.FirstName, t.LastName, t.Bio,
		t.Role, t.IsSuperuser, t.PasswordHash, t.DateJoined,
	}
}
