// Auth HTTP handlers.
//
// This file exposes REST endpoints for account lifecycle:
//   - POST /auth/register  (create account, returns user + token)
//   - POST /auth/login     (credential check, returns user + token)
//   - POST /auth/logout    (stateless acknowledgement)
//   - GET  /auth/me        (current user from bearer token)
//
// Sessions are stateless JWTs: logout exists for client symmetry only and
// invalidates nothing server-side.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/services"
)

// AuthService defines the account operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// Register creates an account and returns the user plus a signed token.
	Register(ctx context.Context, email, password, name string) (*domain.User, string, error)
	// Login verifies credentials and returns the user plus a signed token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// Me loads the user behind a verified token subject.
	Me(ctx context.Context, userID string) (*domain.User, error)
}

// RegisterRequest is the JSON payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"ana@example.com"`
	Password string `json:"password" binding:"required" example:"correct-horse-battery"`
	Name     string `json:"name" example:"Ana"`
}

// LoginRequest is the JSON payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ana@example.com"`
	Password string `json:"password" binding:"required" example:"correct-horse-battery"`
}

// AuthResponse carries the authenticated user and a bearer token.
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register godoc
// @ID          register
// @Summary     Create an account
// @Description Registers a new user and returns the profile plus a bearer token.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterRequest  true  "Registration payload"
//
// @Success     201  {object}  handlers.AuthResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure or email taken"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /auth/register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, token, err := h.authSvc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			fail(c, http.StatusBadRequest, ErrCodeEmailTaken, "email already registered")
		case errors.Is(err, services.ErrInvalidEmail), errors.Is(err, services.ErrWeakPassword):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not create account")
		}
		return
	}
	ok(c, http.StatusCreated, AuthResponse{User: u, Token: token})
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies credentials and returns the profile plus a bearer token.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Login payload"
//
// @Success     200  {object}  handlers.AuthResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Router      /auth/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid email or password")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not log in")
		return
	}
	ok(c, http.StatusOK, AuthResponse{User: u, Token: token})
}

// Logout godoc
// @ID          logout
// @Summary     Log out
// @Description Stateless acknowledgement; tokens remain valid until expiry.
// @Tags        Auth
// @Produce     json
//
// @Success     200  {object}  handlers.SuccessResponse
// @Router      /auth/logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	ok(c, http.StatusOK, SuccessResponse{Success: true})
}

// Me godoc
// @ID          me
// @Summary     Current user
// @Description Returns the profile behind the presented bearer token.
// @Tags        Auth
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Router      /auth/me [get]
func (h *Handlers) Me(c *gin.Context) {
	u, err := h.authSvc.Me(c.Request.Context(), userID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "unknown user")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load user")
		return
	}
	ok(c, http.StatusOK, gin.H{"user": u})
}
