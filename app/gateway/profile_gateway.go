package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"account-service/app/domain"
	"account-service/app/port"
)

// ProfileGateway implements port.ProfileGateway. It acts as an
// anti-corruption layer between the engine and the profile repository.
type ProfileGateway struct {
	profileRepo port.ProfileRepositoryPort
	logger      *slog.Logger
}

// NewProfileGateway creates a new ProfileGateway instance.
func NewProfileGateway(profileRepo port.ProfileRepositoryPort, logger *slog.Logger) port.ProfileGateway {
	return &ProfileGateway{
		profileRepo: profileRepo,
		logger:      logger.With("component", "profile_gateway"),
	}
}

// CreateProfile stores a new profile row after validation.
func (g *ProfileGateway) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == uuid.Nil {
		return domain.NewAccountError(domain.KindValidation, "profile requires an identity ID", nil)
	}
	if profile.Age != nil && *profile.Age < 0 {
		return domain.NewAccountError(domain.KindValidation, "age must not be negative", nil)
	}

	g.logger.Info("creating profile",
		"profile_id", profile.ID,
		"email", profile.Email)

	if err := g.profileRepo.Create(ctx, profile); err != nil {
		return err
	}

	return nil
}

// GetProfile reads a profile row; (nil, nil) when the row is missing.
func (g *ProfileGateway) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	profile, err := g.profileRepo.GetByID(ctx, id)
	if err != nil {
		g.logger.Error("failed to get profile", "profile_id", id, "error", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// ListProfiles returns all profiles in stable name order.
func (g *ProfileGateway) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	profiles, err := g.profileRepo.List(ctx)
	if err != nil {
		g.logger.Error("failed to list profiles", "error", err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

// UpdateProfile writes validated changes to a profile row.
func (g *ProfileGateway) UpdateProfile(ctx context.Context, id uuid.UUID, changes domain.ProfileChanges) error {
	if changes.Age != nil && *changes.Age < 0 {
		return domain.NewAccountError(domain.KindValidation, "age must not be negative", nil)
	}

	g.logger.Info("updating profile", "profile_id", id)

	if err := g.profileRepo.Update(ctx, id, changes); err != nil {
		return err
	}

	return nil
}

// DeleteProfile removes a profile row.
func (g *ProfileGateway) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	g.logger.Info("deleting profile", "profile_id", id)

	if err := g.profileRepo.Delete(ctx, id); err != nil {
		return err
	}

	return nil
}
