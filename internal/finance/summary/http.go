// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

package summary

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ledgerly/api/internal/platform/apperr"
	requestutil "github.com/ledgerly/api/internal/platform/request"
	"github.com/ledgerly/api/internal/platform/respond"
)

// Handler implements the summary HTTP endpoint.
type Handler struct {
	summaryService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{summaryService: service}
}

// Routes returns a [chi.Router] configured with the summary route.
//
// # Endpoints
//   - GET / : Monthly income/expense totals for the org.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.monthly)

	return router
}

/*
Monthly returns the org's totals for one calendar month.

GET /org/{orgID}/summary?month=YYYY-MM

Response:
  - 200: MonthlySummary: Zero-filled totals
  - 400: BAD_REQUEST: Missing or malformed month selector
*/
func (handler *Handler) monthly(writer http.ResponseWriter, request *http.Request) {
	month := request.URL.Query().Get("month")
	if month == "" {
		respond.Error(writer, request, apperr.BadRequest("Month query parameter is required"))
		return
	}

	sum, err := handler.summaryService.Monthly(request.Context(), requestutil.OrgID(request), month)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sum)
}
