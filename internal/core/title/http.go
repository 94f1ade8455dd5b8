// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/pkg/convert"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the /titles endpoints.
type Handler struct {
	titleService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{titleService: service}
}

// Routes returns a [chi.Router] configured with title routes.
//
// # Endpoints
//   - GET    /            : Lists titles (filters: genre, category, name, year)
//   - POST   /            : Creates a title (admin)
//   - GET    /{title_id}  : Returns one title with its rating
//   - PATCH  /{title_id}  : Updates a title (admin)
//   - DELETE /{title_id}  : Deletes a title (admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{"+ParamTitleID+"}", func(router chi.Router) {
		router.Get("/", handler.get)
		router.Patch("/", handler.update)
		router.Delete("/", handler.delete)
	})

	return router
}

// filterFrom reads the list filters from the query string.
func filterFrom(request *http.Request) Filter {
	query := request.URL.Query()
	return Filter{
		Genre:    query.Get(FieldGenre),
		Category: query.Get(FieldCategory),
		Name:     query.Get(FieldName),
		Year:     convert.ToIntPtr(query.Get(FieldYear)),
	}
}

/*
List returns titles, newest release year first.

GET /api/v1/titles?genre=<slug>&category=<slug>&name=<substring>&year=<int>
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	result, err := handler.titleService.List(request.Context(), requestutil.Actor(request), filterFrom(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Items, pagination.NewMeta(params, result.Total))
}

/*
Create adds a title.

POST /api/v1/titles

Response:
  - 201: Record (genre and category as slugs)
  - 400: Validation failure or unknown slug
  - 401/403: Not an admin
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.titleService.Create(request.Context(), requestutil.Actor(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, ParamTitleID)

	title, err := handler.titleService.Get(request.Context(), requestutil.Actor(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.Param(request, ParamTitleID)
	record, err := handler.titleService.Update(request.Context(), requestutil.Actor(request), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, ParamTitleID)

	if err := handler.titleService.Delete(request.Context(), requestutil.Actor(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
