// Copyright (c) 2026 Ledgerly. All rights reserved.
// Author: dev@ledgerly.app

// HTTP delivery layer for the authentication lifecycle.
//
// # Architecture
//
// The handler acts as a thin mediation layer between the web and the domain
// service:
//   - Protocol: Standard RESTful JSON interface.
//   - Security: Returns bearer tokens in the response body; no cookies and
//     no server-side session state.
//   - Verification: Enforces strict input validation before passing to [Service].
//
// This layer is strictly responsible for transport concerns (status codes, JSON).

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ledgerly/api/internal/platform/request"
	"github.com/ledgerly/api/internal/platform/respond"
	"github.com/ledgerly/api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
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
//   - POST /register : Creates a new account and returns a token.
//   - POST /login    : Authenticates and returns a token.
//   - POST /logout   : Stateless acknowledgement; always 204.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	return router
}

// # Request Payloads

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is the transport shape shared by register and login.
type sessionResponse struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user"`
}

/*
Register handles the creation of a new user account.

POST /auth/register

Description: Validates input, checks for identity conflicts, persists a new
user profile, and returns a ready-to-use access token.

Request:
  - Body: registerRequest (Email, Password, Name?)

Response:
  - 201: sessionResponse: Token and created profile
  - 400: VALIDATION_ERROR: Bad input or validation failure
  - 409: CONFLICT: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, sessionResponse{
		AccessToken: session.AccessToken,
		User:        session.User,
	})
}

/*
Login authenticates a user and issues an access token.

POST /auth/login

Description: Verifies credentials and returns a signed bearer token. Unknown
emails and wrong passwords produce the identical response.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: sessionResponse: Token and profile
  - 401: AUTH_REQUIRED: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessionResponse{
		AccessToken: session.AccessToken,
		User:        session.User,
	})
}

/*
Logout acknowledges a client-side session teardown.

POST /auth/logout

Description: There is no server-side token registry to invalidate, so the
endpoint succeeds unconditionally, token or not. Clients discard their token.

Response:
  - 204: No Content: Always
*/
func (handler *Handler) logout(writer http.ResponseWriter, _ *http.Request) {
	respond.NoContent(writer)
}
