package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"account-service/app/domain"
	"account-service/app/port"
	"account-service/app/utils/validator"
)

// AuthHandler exposes the authentication flows over HTTP.
type AuthHandler struct {
	accounts port.AccountUsecase
	validate *validator.Validator
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts port.AccountUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register provisions an identity and its profile row in one flow
// @Summary Register account
// @Description Create an identity with the provider, sign in, and reconcile the profile row
// @Tags authentication
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration details"
// @Success 201 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind registration request", "error", err)
		return writeError(c, domain.NewAccountError(domain.KindValidation,
			"request body could not be parsed", err))
	}

	if err := h.validate.Validate(&req); err != nil {
		return writeError(c, domain.NewAccountError(domain.KindValidation, err.Error(), err))
	}

	profile, err := h.accounts.Register(ctx, req.Email, req.Password, domain.ProfileInput{
		Name:        req.Name,
		Age:         req.Age,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Warn("registration failed",
			"email", req.Email,
			"kind", domain.KindOf(err))
		return writeError(c, err)
	}

	h.logger.Info("registration completed",
		"identity_id", profile.ID,
		"email", req.Email)

	return c.JSON(http.StatusCreated, ProfileResponse{
		Profile: profile,
		Session: h.accounts.Session(),
	})
}

// Login authenticates credentials and resolves the profile
// @Summary Login
// @Description Authenticate against the identity provider and resolve the profile row
// @Tags authentication
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Error("failed to bind login request", "error", err)
		return writeError(c, domain.NewAccountError(domain.KindValidation,
			"request body could not be parsed", err))
	}

	if err := h.validate.Validate(&req); err != nil {
		return writeError(c, domain.NewAccountError(domain.KindValidation, err.Error(), err))
	}

	profile, err := h.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login failed",
			"email", req.Email,
			"kind", domain.KindOf(err))
		return writeError(c, err)
	}

	h.logger.Info("login completed", "identity_id", profile.ID)

	return c.JSON(http.StatusOK, ProfileResponse{
		Profile: profile,
		Session: h.accounts.Session(),
	})
}

// Logout ends the provider session and resets the local session
// @Summary Logout
// @Description Revoke the provider session; the local session resets regardless of the outcome
// @Tags authentication
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.accounts.Logout(ctx); err != nil {
		h.logger.Warn("provider logout failed, local session reset anyway",
			"kind", domain.KindOf(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SessionResponse{Session: h.accounts.Session()})
}

// GetSession returns the current session snapshot
// @Summary Current session
// @Description Return the engine's current session state
// @Tags authentication
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /v1/auth/session [get]
func (h *AuthHandler) GetSession(c echo.Context) error {
	return c.JSON(http.StatusOK, SessionResponse{Session: h.accounts.Session()})
}

// RequestPasswordReset starts the provider's recovery flow
// @Summary Request password reset
// @Description Trigger the identity provider's recovery flow for the given email
// @Tags authentication
// @Accept json
// @Produce json
// @Param body body PasswordResetRequest true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /v1/auth/recovery [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	ctx := c.Request().Context()

	var req PasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, domain.NewAccountError(domain.KindValidation,
			"request body could not be parsed", err))
	}

	if err := h.validate.Validate(&req); err != nil {
		return writeError(c, domain.NewAccountError(domain.KindValidation, err.Error(), err))
	}

	if err := h.accounts.RequestPasswordReset(ctx, req.Email); err != nil {
		h.logger.Warn("password reset request failed",
			"email", req.Email,
			"kind", domain.KindOf(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "recovery instructions sent if the account exists",
	})
}
