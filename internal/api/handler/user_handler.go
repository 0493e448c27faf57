package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medichain/identity-service/internal/api/metrics"
	"github.com/medichain/identity-service/internal/core/domain"
	"github.com/medichain/identity-service/internal/core/ports"
)

// UserHandler handles HTTP requests for the identity operations.
type UserHandler struct {
	identity ports.IdentityService
}

func NewUserHandler(identity ports.IdentityService) *UserHandler {
	return &UserHandler{identity: identity}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  registerResponse
// @Failure      500   {object}  map[string]string
// @Router       /api/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, registerResponse{Success: false, Message: "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, registerResponse{Success: false, Message: err.Error()})
	}

	// Format already checked by the datetime validation tag.
	dob, _ := time.Parse(dateLayout, req.DOB)

	summary, err := h.identity.Register(c.Request().Context(), ports.RegistrationInput{
		Role:            domain.Role(req.Role),
		Username:        req.Username,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		MailID:          req.MailID,
		Phone:           req.Phone,
		DOB:             dob,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		var msg, result string
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			msg, result = "Username is already taken!", "username_taken"
		case errors.Is(err, domain.ErrEmailTaken):
			msg, result = "Email is already taken!", "email_taken"
		case errors.Is(err, domain.ErrPasswordMismatch):
			msg, result = "Passwords do not match!", "password_mismatch"
		case errors.Is(err, domain.ErrInvalidRole):
			msg, result = "Invalid role!", "invalid_role"
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return err
		}
		metrics.RegistrationsTotal.WithLabelValues(result).Inc()
		return c.JSON(http.StatusBadRequest, registerResponse{Success: false, Message: msg})
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Success: true,
		Message: "User registered successfully!",
		User: &registeredUser{
			ID:        summary.ID,
			Username:  summary.Username,
			Email:     summary.MailID,
			FirstName: summary.FirstName,
			LastName:  summary.LastName,
			Role:      string(summary.Role),
		},
	})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login with username or email
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  loginResponse
// @Failure      401   {object}  loginResponse
// @Router       /api/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Success: false, Message: "Invalid request payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginResponse{Success: false, Message: err.Error()})
	}

	result, err := h.identity.Login(c.Request().Context(), ports.LoginInput{
		UsernameOrEmail: req.UsernameOrEmail,
		Password:        req.Password,
	})
	if err != nil {
		var msg, label string
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			msg, label = "User not found!", "not_found"
		case errors.Is(err, domain.ErrInvalidCredentials):
			msg, label = "Invalid password!", "wrong_password"
		case errors.Is(err, domain.ErrAccountDeactivated):
			msg, label = "Account is deactivated!", "deactivated"
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			return err
		}
		metrics.LoginsTotal.WithLabelValues(label).Inc()
		return c.JSON(http.StatusUnauthorized, loginResponse{Success: false, Message: msg})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Success:  true,
		Message:  "Login successful!",
		Token:    result.Token,
		Username: result.Username,
		Role:     string(result.Role),
	})
}

// Logout acknowledges a client-side token discard.
//
// @Summary      Logout
// @Tags         identity
// @Produce      plain
// @Success      200  {string}  string
// @Router       /api/logout [post]
func (h *UserHandler) Logout(c echo.Context) error {
	return c.String(http.StatusOK, h.identity.Logout())
}

// Profile returns the authenticated user's full profile.
//
// @Summary      Get own profile
// @Tags         identity
// @Produce      json
// @Param        Authorization  header    string  true  "Bearer token"
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing or invalid Authorization header"})
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	view, err := h.identity.Profile(c.Request().Context(), token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		ID:        view.ID,
		Username:  view.Username,
		MailID:    view.MailID,
		FirstName: view.FirstName,
		LastName:  view.LastName,
		Role:      string(view.Role),
		Phone:     view.Phone,
		DOB:       view.DOB.Format(dateLayout),
	})
}

// Deactivate flips an account inactive. Deactivated accounts keep their
// record but can no longer log in.
//
// @Summary      Deactivate a user account
// @Tags         identity
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200  {object}  deactivateResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{username}/deactivate [post]
func (h *UserHandler) Deactivate(c echo.Context) error {
	username := c.Param("username")
	if err := h.identity.Deactivate(c.Request().Context(), username); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deactivateResponse{
		Success:   true,
		Message:   "User deactivated successfully!",
		Timestamp: time.Now().Format(timestampLayout),
	})
}
