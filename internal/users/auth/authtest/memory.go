// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package authtest provides in-memory doubles for the identity store and
// the mail transport, for use in service and handler tests.
package authtest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # Identity Store

// Repository is a goroutine-safe in-memory [auth.UserRepository] that
// enforces username and email uniqueness like the database constraints.
type Repository struct {
	mu    sync.Mutex
	users map[string]auth.User
}

// NewRepository returns an empty store.
func NewRepository() *Repository {
	return &Repository{users: make(map[string]auth.User)}
}

var _ auth.UserRepository = (*Repository)(nil)

func (r *Repository) find(match func(auth.User) bool) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if match(user) {
			found := user
			return &found, nil
		}
	}
	return nil, apperr.NotFound("User")
}

// FindByID implements [auth.UserRepository].
func (r *Repository) FindByID(_ context.Context, id string) (*auth.User, error) {
	return r.find(func(u auth.User) bool { return u.ID == id })
}

// FindByUsername implements [auth.UserRepository].
func (r *Repository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return r.find(func(u auth.User) bool { return u.Username == username })
}

// FindByEmail implements [auth.UserRepository].
func (r *Repository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return r.find(func(u auth.User) bool { return u.Email == email })
}

// List implements [auth.UserRepository].
func (r *Repository) List(_ context.Context, filter auth.Filter, params pagination.Params) (pagination.Result[*auth.User], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]*auth.User, 0, len(r.users))
	for _, user := range r.users {
		if strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) {
			found := user
			matched = append(matched, &found)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })

	result := pagination.Result[*auth.User]{Items: matched, Total: len(matched)}
	if params.Unbounded() {
		return result, nil
	}

	start := min(params.Offset(), len(matched))
	end := min(start+params.Limit, len(matched))
	result.Items = matched[start:end]
	return result, nil
}

// conflict reports a uniqueness violation against every user except skipID.
func (r *Repository) conflict(user *auth.User, skipID string) error {
	for id, other := range r.users {
		if id == skipID {
			continue
		}
		if other.Username == user.Username {
			return apperr.FieldConflict(auth.FieldUsername, constants.MsgMustBeUnique)
		}
		if other.Email == user.Email {
			return apperr.FieldConflict(auth.FieldEmail, constants.MsgMustBeUnique)
		}
	}
	return nil
}

// Create implements [auth.UserRepository].
func (r *Repository) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.conflict(user, ""); err != nil {
		return err
	}
	r.users[user.ID] = *user
	return nil
}

// Update implements [auth.UserRepository]. The stored credential is kept.
func (r *Repository) Update(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	if err := r.conflict(user, user.ID); err != nil {
		return err
	}

	updated := *user
	updated.CredentialHash = stored.CredentialHash
	updated.IsSuperuser = stored.IsSuperuser
	updated.DateJoined = stored.DateJoined
	r.users[user.ID] = updated
	return nil
}

// UpdateCredential implements [auth.UserRepository].
func (r *Repository) UpdateCredential(_ context.Context, id string, hash *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.CredentialHash = hash
	r.users[id] = stored
	return nil
}

// Delete implements [auth.UserRepository].
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(r.users, id)
	return nil
}

// # Mail Transport

// Mailbox records every message instead of sending it. Set Fail to make
// every Send return an error.
type Mailbox struct {
	mu       sync.Mutex
	Messages []mail.Message
	Fail     bool
}

var _ mail.Sender = (*Mailbox)(nil)

// ErrRelayDown is returned by a failing Mailbox.
var ErrRelayDown = errors.New("smtp relay unavailable")

// Send implements [mail.Sender].
func (m *Mailbox) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail {
		return ErrRelayDown
	}
	m.Messages = append(m.Messages, msg)
	return nil
}

// Last returns the most recent message, or false if none was sent.
func (m *Mailbox) Last() (mail.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Messages) == 0 {
		return mail.Message{}, false
	}
	return m.Messages[len(m.Messages)-1], true
}

// Count returns the number of delivered messages.
func (m *Mailbox) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Messages)
}
