// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/core/title"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the /titles/{title_id}/reviews endpoints.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns a [chi.Router] configured with review routes. It expects
// to be mounted below a pattern that binds {title_id}.
//
// # Endpoints
//   - GET    /             : Lists the title's reviews
//   - POST   /             : Reviews the title (authenticated)
//   - GET    /{review_id}  : Returns one review
//   - PATCH  /{review_id}  : Edits a review (author, moderator, admin)
//   - DELETE /{review_id}  : Deletes a review (author, moderator, admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{"+ParamReviewID+"}", func(router chi.Router) {
		router.Get("/", handler.get)
		router.Patch("/", handler.update)
		router.Delete("/", handler.delete)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	titleID := requestutil.Param(request, title.ParamTitleID)

	result, err := handler.reviewService.List(request.Context(), requestutil.Actor(request), titleID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Items, pagination.NewMeta(params, result.Total))
}

/*
Create reviews a title as the calling user.

POST /api/v1/titles/{title_id}/reviews

Response:
  - 201: Review
  - 400: Validation failure or the caller already reviewed this title
  - 401: Anonymous caller
  - 404: Unknown title
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID := requestutil.Param(request, title.ParamTitleID)
	review, err := handler.reviewService.Create(request.Context(), requestutil.Actor(request), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, title.ParamTitleID)
	id := requestutil.Param(request, ParamReviewID)

	review, err := handler.reviewService.Get(request.Context(), requestutil.Actor(request), titleID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID := requestutil.Param(request, title.ParamTitleID)
	id := requestutil.Param(request, ParamReviewID)

	review, err := handler.reviewService.Update(request.Context(), requestutil.Actor(request), titleID, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID := requestutil.Param(request, title.ParamTitleID)
	id := requestutil.Param(request, ParamReviewID)

	if err := handler.reviewService.Delete(request.Context(), requestutil.Actor(request), titleID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
