// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package transaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ledgerly/api/internal/platform/request"
	"github.com/ledgerly/api/internal/platform/respond"
	"github.com/ledgerly/api/internal/platform/validate"
)

// Handler implements transaction HTTP endpoints.
//
// All routes are mounted under /org/{orgID}; the org-scoping middleware
// guarantees a tenant id is in context before any method here runs.
type Handler struct {
	transactionService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{transactionService: service}
}

// Routes returns a [chi.Router] configured with transaction routes.
//
// # Endpoints
//   - GET    /      : Lists transactions (filterable, newest first, capped).
//   - POST   /      : Creates a transaction.
//   - PATCH  /{id}  : Partially updates a transaction.
//   - DELETE /{id}  : Deletes a transaction.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

type createRequest struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Currency    *string `json:"currency"`
	Date        string  `json:"date"`
	Notes       *string `json:"notes"`
	CategoryID  *string `json:"categoryId"`
	IsRecurring bool    `json:"isRecurring"`
	NextDueDate *string `json:"nextDueDate"`
}

/*
List returns the org's transactions, newest date first.

GET /org/{orgID}/transactions?from=&to=&type=&categoryId=

Description: All filters are optional. The result is capped at the
platform list limit; narrow the date window to reach older rows.

Response:
  - 200: []Transaction: Date-descending list, possibly empty
  - 400: VALIDATION_ERROR: Malformed filter value
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	transactions, err := handler.transactionService.List(request.Context(), requestutil.OrgID(request), ListInput{
		From:       query.Get("from"),
		To:         query.Get("to"),
		Type:       query.Get("type"),
		CategoryID: query.Get("categoryId"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, transactions)
}

/*
Create records a new transaction for the org.

POST /org/{orgID}/transactions

Request:
  - Body: createRequest (Type, Amount, Date required; rest optional)

Response:
  - 201: Transaction: Created entity
  - 400: VALIDATION_ERROR: Bad type, non-positive amount, malformed date
  - 409: CONFLICT: Referenced category does not exist
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	txn, err := handler.transactionService.Create(request.Context(), requestutil.OrgID(request), userID, CreateInput{
		Type:        input.Type,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Date:        input.Date,
		Notes:       input.Notes,
		CategoryID:  input.CategoryID,
		IsRecurring: input.IsRecurring,
		NextDueDate: input.NextDueDate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, txn)
}

/*
Update partially updates a transaction.

PATCH /org/{orgID}/transactions/{id}

Description: Fields omitted from the body keep their stored values;
explicit null clears a nullable field. Sending the same patch twice yields
the same stored state.

Response:
  - 200: Transaction: Updated entity
  - 400: VALIDATION_ERROR: Null on a required field or malformed value
  - 404: NOT_FOUND: Unknown id or another tenant's transaction
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Patch
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	id := requestutil.ID(request, "id")

	txn, err := handler.transactionService.Update(request.Context(), requestutil.OrgID(request), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, txn)
}

/*
Remove deletes a transaction from the org.

DELETE /org/{orgID}/transactions/{id}

Response:
  - 204: No Content: Deleted
  - 404: NOT_FOUND: Unknown id or another tenant's transaction
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.transactionService.Delete(request.Context(), requestutil.OrgID(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
