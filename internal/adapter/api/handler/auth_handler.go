package handler

import (
	"net/http"
	"time"

	"marketplace/internal/adapter/api/middleware"
	"marketplace/internal/domain/entity"
	"marketplace/internal/infrastructure/memory"
	"marketplace/internal/infrastructure/ratelimit"
	"marketplace/pkg/logger"
	"marketplace/pkg/response"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	backend *memory.Backend
	limiter *ratelimit.RateLimiter
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(backend *memory.Backend, limiter *ratelimit.RateLimiter) *AuthHandler {
	return &AuthHandler{
		backend: backend,
		limiter: limiter,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return response.JSON(c, identity)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sessionID, identity, err := h.backend.Authenticate(req.Email, req.Password)
	if err != nil {
		logger.Info().Str("email", req.Email).Msg("rejected login")
		return response.Error(c, err)
	}
	if h.limiter != nil {
		h.limiter.Reset(c.RealIP(), ratelimit.ActionLogin)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	logger.Info().Str("user_id", identity.ID).Str("role", string(identity.Role)).Msg("signed in")
	return response.Message(c, http.StatusOK, "Login successful", nil)
}

// Logout succeeds whether or not a session was present.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		h.backend.EndSession(cookie.Value)
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	return response.Message(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) RegisterUser(c echo.Context) error {
	return h.register(c, entity.RoleUser)
}

func (h *AuthHandler) RegisterSeller(c echo.Context) error {
	return h.register(c, entity.RoleSeller)
}

func (h *AuthHandler) register(c echo.Context, role entity.Role) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	identity, err := h.backend.Register(role, req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Account created successfully", identity)
}
