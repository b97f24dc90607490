// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ledgerly/api/internal/platform/request"
	"github.com/ledgerly/api/internal/platform/respond"
	"github.com/ledgerly/api/internal/platform/validate"
)

// Handler implements category HTTP endpoints.
//
// All routes are mounted under /org/{orgID}; the org-scoping middleware
// guarantees a tenant id is in context before any method here runs.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns a [chi.Router] configured with category routes.
//
// # Endpoints
//   - GET    /      : Lists the org's categories.
//   - POST   /      : Creates a category.
//   - DELETE /{id}  : Deletes a category.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{id}", handler.remove)

	return router
}

type createRequest struct {
	Name string  `json:"name"`
	Code *string `json:"code"`
}

/*
List returns all categories of the org.

GET /org/{orgID}/categories

Response:
  - 200: []Category: Name-ordered list, possibly empty
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.categoryService.List(request.Context(), requestutil.OrgID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

/*
Create adds a new category to the org.

POST /org/{orgID}/categories

Request:
  - Body: createRequest (Name, Code?)

Response:
  - 201: Category: Created entity
  - 400: VALIDATION_ERROR: Missing or oversized fields
  - 409: CONFLICT: Duplicate name within the org
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	cat, err := handler.categoryService.Create(request.Context(), requestutil.OrgID(request), CreateInput{
		Name: input.Name,
		Code: input.Code,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, cat)
}

/*
Remove deletes a category from the org.

DELETE /org/{orgID}/categories/{id}

Response:
  - 204: No Content: Deleted
  - 404: NOT_FOUND: Unknown id or another tenant's category
  - 409: CONFLICT: Category still referenced by transactions
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.categoryService.Delete(request.Context(), requestutil.OrgID(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
