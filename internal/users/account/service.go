// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/pointer"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates account administration and self-service.
type Service struct {
	users  auth.UserRepository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(users auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// # Administration

// List returns one page of accounts. Admin only.
func (service *Service) List(ctx context.Context, actor access.Actor, filter auth.Filter, params pagination.Params) (pagination.Result[*auth.User], error) {
	if err := access.UserAdmin.Authorize(actor, access.ActionList); err != nil {
		return pagination.Result[*auth.User]{}, err
	}
	return service.users.List(ctx, filter, params)
}

// Get returns the account with the given username. Admin only.
func (service *Service) Get(ctx context.Context, actor access.Actor, username string) (*auth.User, error) {
	if err := access.UserAdmin.Authorize(actor, access.ActionRetrieve); err != nil {
		return nil, err
	}
	return service.users.FindByUsername(ctx, username)
}

/*
Create registers an account on behalf of an admin.

Description: The account starts without a usable credential; its owner
obtains one through the regular signup flow with the same (username, email).

Returns:
  - *auth.User: The created account
  - error: ValidationError or field-attributed Conflict
*/
func (service *Service) Create(ctx context.Context, actor access.Actor, input UserInput) (*auth.User, error) {
	if err := access.UserAdmin.Authorize(actor, access.ActionCreate); err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:   uuid.New(),
		Role: sec.RoleUser,
	}
	apply(user, input, true)

	validator := &validate.Validator{}
	auth.ValidateUsername(validator, user.Username)
	auth.ValidateEmail(validator, user.Email)
	validateProfile(validator, user, input.Role != nil)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_created",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
		slog.String("by", actor.Username),
	)
	return user, nil
}

// Update applies a partial change to any account, role included. Admin only.
func (service *Service) Update(ctx context.Context, actor access.Actor, username string, input UserInput) (*auth.User, error) {
	if err := access.UserAdmin.Authorize(actor, access.ActionUpdate); err != nil {
		return nil, err
	}

	user, err := service.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := service.save(ctx, user, input, true); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_updated",
		slog.String("username", user.Username),
		slog.String("by", actor.Username),
	)
	return user, nil
}

// Delete removes an account and its content. Admin only.
func (service *Service) Delete(ctx context.Context, actor access.Actor, username string) error {
	if err := access.UserAdmin.Authorize(actor, access.ActionDelete); err != nil {
		return err
	}

	user, err := service.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if err := service.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "user_deleted",
		slog.String("username", user.Username),
		slog.String("by", actor.Username),
	)
	return nil
}

// # Self-Service

// Me returns the caller's own account.
func (service *Service) Me(ctx context.Context, actor access.Actor) (*auth.User, error) {
	if err := access.Self.Authorize(actor, access.ActionRetrieve); err != nil {
		return nil, err
	}
	return service.users.FindByID(ctx, actor.UserID)
}

/*
UpdateMe applies a partial change to the caller's own account.

Description: Any role may edit its profile here, but the role is re-pinned to
its stored value. A client-supplied role is accepted syntactically and
silently discarded.
*/
func (service *Service) UpdateMe(ctx context.Context, actor access.Actor, input UserInput) (*auth.User, error) {
	if err := access.Self.Authorize(actor, access.ActionUpdate); err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := service.save(ctx, user, input, false); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "profile_updated", slog.String("username", user.Username))
	return user, nil
}

// save merges input into user, validates the changed fields and persists.
func (service *Service) save(ctx context.Context, user *auth.User, input UserInput, roleWritable bool) error {
	apply(user, input, roleWritable)

	validator := &validate.Validator{}
	if input.Username != nil {
		auth.ValidateUsername(validator, user.Username)
	}
	if input.Email != nil {
		auth.ValidateEmail(validator, user.Email)
	}
	validateProfile(validator, user, roleWritable && input.Role != nil)
	if err := validator.Err(); err != nil {
		return err
	}

	return service.users.Update(ctx, user)
}

// apply copies the set fields of input onto user.
func apply(user *auth.User, input UserInput, roleWritable bool) {
	pointer.Apply(&user.Username, input.Username)
	pointer.Apply(&user.Email, input.Email)
	pointer.Apply(&user.FirstName, input.FirstName)
	pointer.Apply(&user.LastName, input.LastName)
	pointer.Apply(&user.Bio, input.Bio)

	if roleWritable && input.Role != nil {
		user.Role = sec.UserRole(*input.Role)
	}
}

func validateProfile(validator *validate.Validator, user *auth.User, checkRole bool) {
	validator.MaxLen(auth.FieldFirstName, user.FirstName, constants.PersonNameMaxLength).
		MaxLen(auth.FieldLastName, user.LastName, constants.PersonNameMaxLength)

	if checkRole {
		validator.OneOf(auth.FieldRole, string(user.Role), sec.RoleNames()...)
	}
}
