package handlers

import (
	"github.com/labstack/echo/v4"

	"account-service/app/domain"
	apperrors "account-service/app/utils/errors"
)

// Request types

type RegisterRequest struct {
	Email       string `json:"email" validate:"required"`
	Password    string `json:"password" validate:"required,min=8"`
	Name        string `json:"name,omitempty"`
	Age         string `json:"age,omitempty"`
	Description string `json:"description,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Age         string `json:"age"`
	Description string `json:"description"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required"`
}

// Response types

type SessionResponse struct {
	Session domain.Session `json:"session"`
}

type ProfileResponse struct {
	Profile *domain.Profile `json:"profile"`
	Session domain.Session  `json:"session"`
}

type ProfileListResponse struct {
	Profiles []*domain.Profile `json:"profiles"`
	Count    int               `json:"count"`
}

type DeletionResponse struct {
	Outcome domain.DeletionOutcome `json:"outcome"`
	Session domain.Session         `json:"session"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// writeError renders a domain error as its taxonomy status and body.
func writeError(c echo.Context, err error) error {
	status, body := apperrors.ToResponse(err)
	return c.JSON(status, body)
}
