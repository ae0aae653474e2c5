package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go

import (
	"context"

	"account-service/app/domain"

	"github.com/google/uuid"
)

// AccountUsecase is the UI-facing surface of the reconciliation engine. The
// presentation layer calls these and re-renders from the session container.
type AccountUsecase interface {
	// Mutating flows, serialized per engine instance
	Register(ctx context.Context, email, password string, attrs domain.ProfileInput) (*domain.Profile, error)
	Login(ctx context.Context, email, password string) (*domain.Profile, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, attrs domain.ProfileInput) (*domain.Profile, error)
	DeleteAccount(ctx context.Context) (domain.DeletionOutcome, error)
	RequestPasswordReset(ctx context.Context, email string) error

	// Bootstrap restores the session from a still-valid provider session at
	// application start.
	Bootstrap(ctx context.Context) error

	// Reads, unconstrained by the in-flight guard
	Session() domain.Session
	Subscribe(fn func(domain.Session)) (cancel func())
	ListProfiles(ctx context.Context) ([]*domain.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// AuthGateway wraps the external identity provider. Every method returns a
// structured domain error; no provider transport error escapes raw.
type AuthGateway interface {
	// Register provisions an identity for the given credentials. The email
	// may be a bare handle; the gateway normalizes it for the provider and
	// records the original on the returned identity.
	Register(ctx context.Context, email, password, name string) (*domain.Identity, error)
	Login(ctx context.Context, email, password string) (*domain.Identity, error)
	Logout(ctx context.Context) error
	// CurrentIdentity returns (nil, nil) when no provider session is active.
	CurrentIdentity(ctx context.Context) (*domain.Identity, error)
	RequestPasswordReset(ctx context.Context, email string) error
}

// IdentityProviderPort is the low-level driver interface the auth gateway
// builds on. Implemented by driver/kratos.
type IdentityProviderPort interface {
	CreateIdentity(ctx context.Context, email, password string, traits map[string]interface{}) (*domain.Identity, error)
	SignIn(ctx context.Context, email, password string) (*domain.Identity, error)
	SignOut(ctx context.Context) error
	GetSessionIdentity(ctx context.Context) (*domain.Identity, error)
	DeleteIdentity(ctx context.Context, identityID uuid.UUID) error
	RequestRecovery(ctx context.Context, email string) error
}
