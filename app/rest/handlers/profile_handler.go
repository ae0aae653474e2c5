package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"account-service/app/domain"
	"account-service/app/port"
)

// ProfileHandler exposes profile reads and the authenticated mutation flows.
type ProfileHandler struct {
	accounts port.AccountUsecase
	logger   *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(accounts port.AccountUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// ListProfiles returns all profile rows
// @Summary List profiles
// @Description List all profiles ordered by name
// @Tags profiles
// @Produce json
// @Success 200 {object} ProfileListResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /v1/profiles [get]
func (h *ProfileHandler) ListProfiles(c echo.Context) error {
	ctx := c.Request().Context()

	profiles, err := h.accounts.ListProfiles(ctx)
	if err != nil {
		h.logger.Error("failed to list profiles", "kind", domain.KindOf(err))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ProfileListResponse{
		Profiles: profiles,
		Count:    len(profiles),
	})
}

// GetProfile returns a single profile by ID
// @Summary Get profile
// @Description Fetch one profile row by identity ID
// @Tags profiles
// @Produce json
// @Param profileId path string true "Profile ID"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /v1/profiles/{profileId} [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := uuid.Parse(c.Param("profileId"))
	if err != nil {
		return writeError(c, domain.NewAccountError(domain.KindValidation,
			"profile ID must be a UUID", err))
	}

	profile, err := h.accounts.GetProfile(ctx, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile mutates the authenticated identity's profile
// @Summary Update profile
// @Description Validate and persist profile changes for the current identity
// @Tags profiles
// @Accept json
// @Produce json
// @Param body body UpdateProfileRequest true "Profile attributes"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /v1/profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, domain.NewAccountError(domain.KindValidation,
			"request body could not be parsed", err))
	}

	profile, err := h.accounts.UpdateProfile(ctx, domain.ProfileInput{
		Name:        req.Name,
		Age:         req.Age,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Warn("profile update failed", "kind", domain.KindOf(err))
		return writeError(c, err)
	}

	h.logger.Info("profile updated", "identity_id", profile.ID)

	return c.JSON(http.StatusOK, ProfileResponse{
		Profile: profile,
		Session: h.accounts.Session(),
	})
}

// DeleteAccount removes the authenticated identity's profile and identity
// @Summary Delete account
// @Description Orchestrate deletion of the profile row and identity record, then reset the session
// @Tags profiles
// @Produce json
// @Success 200 {object} DeletionResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /v1/account [delete]
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()

	outcome, err := h.accounts.DeleteAccount(ctx)
	if err != nil {
		h.logger.Warn("account deletion failed", "kind", domain.KindOf(err))
		return writeError(c, err)
	}

	h.logger.Info("account deleted", "outcome", outcome)

	return c.JSON(http.StatusOK, DeletionResponse{
		Outcome: outcome,
		Session: h.accounts.Session(),
	})
}
