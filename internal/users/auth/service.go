// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer mints signed bearer tokens. Satisfied by [*sec.TokenService].
type TokenIssuer interface {
	GenerateAccessToken(userID, username, role string, isSuperuser bool, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token exchange use cases.
type Service struct {
	users    UserRepository
	mailer   mail.Sender
	tokens   TokenIssuer
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(users UserRepository, mailer mail.Sender, tokens TokenIssuer, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		mailer:   mailer,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// # Signup Flow

// SignupInput is the (username, email) pair a visitor registers with.
type SignupInput struct {
	Username string
	Email    string
}

/*
Signup registers a visitor, or reissues a code for an identical pair, and
emails a fresh confirmation code.

Description: The previous code stops working as soon as the new hash is
stored. Exactly one message is sent per successful call.

Returns:
  - *User: The new or existing account
  - error: ValidationError, Conflict on a foreign username/email,
    DeliveryFailure if the mail transport rejects the message
*/
func (service *Service) Signup(ctx context.Context, input SignupInput) (*User, error) {

	// 1. Field validation
	if err := validateIdentity(input.Username, input.Email); err != nil {
		return nil, err
	}

	// 2. Resolve the account (reissue or fresh registration)
	user, err := service.resolveSignup(ctx, input)
	if err != nil {
		return nil, err
	}

	// 3. Issue a new one-time credential
	code, err := sec.GenerateConfirmationCode(constants.ConfirmationCodeLength)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: generate confirmation code: %w", err))
	}

	hash, err := sec.HashPassword(code)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: hash confirmation code: %w", err))
	}

	if err := service.users.UpdateCredential(ctx, user.ID, &hash); err != nil {
		return nil, err
	}

	// 4. Out-of-band delivery
	err = service.mailer.Send(ctx, mail.Message{
		To:      user.Email,
		Subject: ConfirmationSubject,
		Body:    fmt.Sprintf(confirmationBody, user.Username, code),
	})
	if err != nil {
		service.logger.ErrorContext(ctx, "confirmation_delivery_failed",
			slog.String("username", user.Username),
			slog.Any("error", err),
		)
		return nil, apperr.DeliveryFailure(err)
	}

	service.logger.InfoContext(ctx, "confirmation_code_issued", slog.String("username", user.Username))
	return user, nil
}

// resolveSignup returns the account the code is issued for.
func (service *Service) resolveSignup(ctx context.Context, input SignupInput) (*User, error) {

	// Username taken: same pair is a reissue, otherwise a conflict
	existing, err := service.users.FindByUsername(ctx, input.Username)
	if err == nil {
		if existing.Email == input.Email {
			return existing, nil
		}
		return nil, apperr.FieldConflict(FieldUsername, constants.MsgMustBeUnique)
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	// Email registered under another username
	if _, err := service.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.FieldConflict(FieldEmail, constants.MsgMustBeUnique)
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	user := &User{
		ID:       uuid.New(),
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}

	if err := service.users.Create(ctx, user); err != nil {
		// A concurrent signup with the identical pair won the insert.
		if apperr.HasCode(err, apperr.CodeConflict) {
			if winner, findErr := service.users.FindByUsername(ctx, input.Username); findErr == nil && winner.Email == input.Email {
				return winner, nil
			}
		}
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_registered", slog.String("username", user.Username))
	return user, nil
}

// # Token Exchange

// TokenInput holds the credentials presented to /auth/token.
type TokenInput struct {
	Username         string
	ConfirmationCode string
}

/*
ExchangeToken verifies a confirmation code and mints a bearer token.

The code is not consumed: it stays valid until the next signup call for the
same account replaces it.

Returns:
  - string: Signed bearer token
  - error: NotFound if the username is unknown, ValidationError on a wrong code
*/
func (service *Service) ExchangeToken(ctx context.Context, input TokenInput) (string, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)
	if err := validator.Err(); err != nil {
		return "", err
	}

	// Unknown usernames are reported as 404, which discloses account existence.
	user, err := service.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.NotFound(resourceUser + " " + input.Username)
		}
		return "", err
	}

	if !user.CheckCredential(input.ConfirmationCode) {
		service.logger.WarnContext(ctx, "token_exchange_rejected", slog.String("username", user.Username))
		return "", validate.FieldError(FieldConfirmationCode, MsgCheckConfirmationCode)
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role), user.IsSuperuser, service.tokenTTL)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("auth: sign access token: %w", err))
	}

	service.logger.InfoContext(ctx, "token_issued", slog.String("username", user.Username))
	return token, nil
}

/*
CurrentClaims overlays the stored account onto verified token claims.

Role, superuser flag and username come from the identity store, so a demotion
or a deletion applies to tokens issued before it.

Returns:
  - error: Unauthorized if the account no longer exists
*/
func (service *Service) CurrentClaims(ctx context.Context, claims *sec.AuthClaims) (*sec.AuthClaims, error) {
	user, err := service.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("User not found").
				WithCause(fmt.Errorf("auth: token subject %s has no account", claims.UserID))
		}
		return nil, err
	}

	current := *claims
	current.Username = user.Username
	current.Role = string(user.Role)
	current.IsSuperuser = user.IsSuperuser
	return &current, nil
}

// # Validation

// ValidateUsername checks the username alphabet, length and reserved alias.
func ValidateUsername(validator *validate.Validator, username string) {
	validator.Required(FieldUsername, username).
		MaxLen(FieldUsername, username, constants.UsernameMaxLength).
		Username(FieldUsername, username, constants.ReservedUsername)
}

// ValidateEmail checks the email format and length.
func ValidateEmail(validator *validate.Validator, email string) {
	validator.Required(FieldEmail, email).MaxLen(FieldEmail, email, constants.EmailMaxLength)
	if email != "" {
		validator.Email(FieldEmail, email)
	}
}

func validateIdentity(username, email string) error {
	validator := &validate.Validator{}
	ValidateUsername(validator, username)
	ValidateEmail(validator, email)
	return validator.Err()
}
