// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

/*
CreateSuperuser registers an administrator account with the superuser flag.

The account starts without a credential. Its owner obtains one through the
regular signup flow, since an identical (username, email) pair reissues a
code for the existing account.

Returns:
  - *User: The created account
  - error: ValidationError, Conflict on a taken username or email
*/
func CreateSuperuser(ctx context.Context, users UserRepository, username, email string, logger *slog.Logger) (*User, error) {
	if err := validateIdentity(username, email); err != nil {
		return nil, err
	}

	user := &User{
		ID:          uuid.New(),
		Username:    username,
		Email:       email,
		Role:        sec.RoleAdmin,
		IsSuperuser: true,
	}

	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "superuser_created", slog.String("username", user.Username))
	return user, nil
}
