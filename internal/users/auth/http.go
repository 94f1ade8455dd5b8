// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the anonymous /auth endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /signup : Registers (or re-registers) and emails a confirmation code.
//   - POST /token  : Exchanges a confirmation code for a bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)

	return router
}

// # Request Payloads

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type signupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

/*
Signup registers a visitor and emails a one-time confirmation code.

POST /api/v1/auth/signup

Response:
  - 200: signupResponse, also for an identical repeated pair
  - 400: Validation failure or username/email taken by another account
  - 502: The confirmation email could not be delivered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput{
		Username: input.Username,
		Email:    input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, signupResponse{Username: user.Username, Email: user.Email})
}

/*
Token exchanges a confirmation code for a bearer token.

POST /api/v1/auth/token

Response:
  - 200: tokenResponse
  - 400: Missing fields or wrong confirmation code
  - 404: Unknown username
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.ExchangeToken(request.Context(), TokenInput{
		Username:         input.Username,
		ConfirmationCode: input.ConfirmationCode,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tokenResponse{Token: token})
}
