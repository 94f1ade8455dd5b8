// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the /categories or /genres endpoints.
type Handler struct {
	taxonomyService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{taxonomyService: service}
}

// Routes returns a [chi.Router] configured with taxonomy routes.
//
// # Endpoints
//   - GET    /        : Lists entries
//   - POST   /        : Creates an entry (admin)
//   - DELETE /{slug}  : Deletes an entry (admin)
//   - GET, PUT, PATCH /{slug} : Always 405
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{"+ParamSlug+"}", func(router chi.Router) {
		router.Get("/", handler.retrieve)
		router.Put("/", respond.MethodNotAllowedHandler)
		router.Patch("/", respond.MethodNotAllowedHandler)
		router.Delete("/", handler.delete)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{Search: request.URL.Query().Get(ParamSearch)}

	result, err := handler.taxonomyService.List(request.Context(), requestutil.Actor(request), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Items, pagination.NewMeta(params, result.Total))
}

/*
Create adds an entry.

POST /api/v1/{categories|genres}

Response:
  - 201: Taxon
  - 400: Validation failure or slug taken
  - 401/403: Not an admin
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	taxon, err := handler.taxonomyService.Create(request.Context(), requestutil.Actor(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, taxon)
}

func (handler *Handler) retrieve(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, ParamSlug)

	taxon, err := handler.taxonomyService.Retrieve(request.Context(), requestutil.Actor(request), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, taxon)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, ParamSlug)

	if err := handler.taxonomyService.Delete(request.Context(), requestutil.Actor(request), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
