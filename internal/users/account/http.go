// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/users/auth"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the /users endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with account routes.
//
// # Endpoints
//   - GET    /            : Lists accounts (admin)
//   - POST   /            : Creates an account (admin)
//   - GET    /me          : Returns the caller's profile
//   - PATCH  /me          : Updates the caller's profile, role excluded
//   - GET    /{username}  : Returns one account (admin)
//   - PATCH  /{username}  : Updates one account (admin)
//   - DELETE /{username}  : Deletes one account (admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	// The static alias is registered before the username pattern.
	router.Group(func(router chi.Router) {
		router.Use(middleware.RequireAuth)
		router.Get("/me", handler.getMe)
		router.Patch("/me", handler.updateMe)
	})

	router.Route("/{"+ParamUsername+"}", func(router chi.Router) {
		router.Get("/", handler.get)
		router.Patch("/", handler.update)
		router.Delete("/", handler.delete)
	})

	return router
}

/*
List returns accounts ordered by username.

GET /api/v1/users?search=<substring>
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := auth.Filter{Search: request.URL.Query().Get(ParamSearch)}

	result, err := handler.accountService.List(request.Context(), requestutil.Actor(request), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Items, pagination.NewMeta(params, result.Total))
}

/*
Create registers an account on behalf of an admin.

POST /api/v1/users

Response:
  - 201: auth.User
  - 400: Validation failure or username/email taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input UserInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.Create(request.Context(), requestutil.Actor(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, ParamUsername)

	user, err := handler.accountService.Get(request.Context(), requestutil.Actor(request), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UserInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	username := requestutil.Param(request, ParamUsername)
	user, err := handler.accountService.Update(request.Context(), requestutil.Actor(request), username, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, ParamUsername)

	if err := handler.accountService.Delete(request.Context(), requestutil.Actor(request), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GetMe returns the caller's own profile.

GET /api/v1/users/me
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.accountService.Me(request.Context(), requestutil.Actor(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateMe updates the caller's own profile. A role in the payload is ignored.

PATCH /api/v1/users/me
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	var input UserInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateMe(request.Context(), requestutil.Actor(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
