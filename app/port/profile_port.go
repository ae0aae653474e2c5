package port

//go:generate mockgen -source=profile_port.go -destination=../mocks/mock_profile_port.go

import (
	"context"

	"account-service/app/domain"

	"github.com/google/uuid"
)

// ProfileGateway is the engine's view of the profile store.
type ProfileGateway interface {
	CreateProfile(ctx context.Context, profile *domain.Profile) error
	// GetProfile returns (nil, nil) when the row does not exist; an error is
	// a genuine query failure. The engine branches on the distinction.
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]*domain.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, changes domain.ProfileChanges) error
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}

// ProfileRepositoryPort is the data access interface implemented by
// driver/postgres.
type ProfileRepositoryPort interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	Update(ctx context.Context, id uuid.UUID, changes domain.ProfileChanges) error
	Delete(ctx context.Context, id uuid.UUID) error
}
