package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// ContextUserKey is where the user-resolving middleware stores the
// authenticated model.User.
const ContextUserKey = "currentUser"

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authContent struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 409 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if err == service.ErrUserAlreadyExists {
			return fail(c, http.StatusConflict, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "failed to register user")
	}

	return respond(c, http.StatusOK, authContent{User: user, Token: token}, "Successfully Registered!")
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return fail(c, http.StatusUnauthorized, err.Error())
		}
		return fail(c, http.StatusInternalServerError, "failed to login")
	}

	return respond(c, http.StatusOK, authContent{User: user, Token: token}, "Successfully Logged In!")
}

// Verify godoc
// @Summary Verify the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /verify-token [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return fail(c, http.StatusUnauthorized, "invalid token")
	}
	return respond(c, http.StatusOK, map[string]any{"user": user}, "Token is valid")
}

// Logout godoc
// @Summary Logout and revoke the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims := TokenClaims(c)
	if claims == nil {
		return fail(c, http.StatusUnauthorized, "invalid token")
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return fail(c, http.StatusInternalServerError, "failed to logout")
	}
	return respond(c, http.StatusOK, nil, "Successfully logged out")
}

// TokenClaims extracts the validated JWT claims placed by the echo-jwt
// middleware.
func TokenClaims(c echo.Context) *auth.Claims {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// CurrentUser returns the resolved user set by the user-resolving
// middleware, nil when absent.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}
