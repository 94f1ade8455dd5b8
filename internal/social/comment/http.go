// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/core/title"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/social/review"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the /titles/{title_id}/reviews/{review_id}/comments endpoints.
type Handler struct {
	commentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{commentService: service}
}

// Routes returns a [chi.Router] configured with comment routes. It expects
// to be mounted below a pattern that binds {title_id} and {review_id}.
//
// # Endpoints
//   - GET    /              : Lists the thread, newest first
//   - POST   /              : Comments on the review (authenticated)
//   - GET    /{comment_id}  : Returns one comment
//   - PATCH  /{comment_id}  : Edits a comment (author, moderator, admin)
//   - DELETE /{comment_id}  : Deletes a comment (author, moderator, admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{"+ParamCommentID+"}", func(router chi.Router) {
		router.Get("/", handler.get)
		router.Patch("/", handler.update)
		router.Delete("/", handler.delete)
	})

	return router
}

// parents returns the title and review ids bound by the mount pattern.
func parents(request *http.Request) (string, string) {
	return requestutil.Param(request, title.ParamTitleID), requestutil.Param(request, review.ParamReviewID)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	titleID, reviewID := parents(request)

	result, err := handler.commentService.List(request.Context(), requestutil.Actor(request), titleID, reviewID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Items, pagination.NewMeta(params, result.Total))
}

/*
Create comments on a review as the calling user.

POST /api/v1/titles/{title_id}/reviews/{review_id}/comments

Response:
  - 201: Comment
  - 400: Empty text
  - 401: Anonymous caller
  - 404: Unknown title or review
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, reviewID := parents(request)
	comment, err := handler.commentService.Create(request.Context(), requestutil.Actor(request), titleID, reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID := parents(request)
	id := requestutil.Param(request, ParamCommentID)

	comment, err := handler.commentService.Get(request.Context(), requestutil.Actor(request), titleID, reviewID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, reviewID := parents(request)
	id := requestutil.Param(request, ParamCommentID)

	comment, err := handler.commentService.Update(request.Context(), requestutil.Actor(request), titleID, reviewID, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID := parents(request)
	id := requestutil.Param(request, ParamCommentID)

	if err := handler.commentService.Delete(request.Context(), requestutil.Actor(request), titleID, reviewID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
