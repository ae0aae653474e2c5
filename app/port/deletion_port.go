package port

//go:generate mockgen -source=deletion_port.go -destination=../mocks/mock_deletion_port.go

import (
	"context"

	"account-service/app/domain"

	"github.com/google/uuid"
)

// DeletionUsecase orchestrates removal of both the profile row and the
// identity record.
type DeletionUsecase interface {
	DeleteAccount(ctx context.Context, identityID uuid.UUID) (domain.DeletionOutcome, error)
}

// AccountDeleterPort invokes the remote privileged deletion procedure, which
// deletes both records server-side. Client credentials cannot delete other
// identities' auth records, so the privileged path is preferred.
type AccountDeleterPort interface {
	DeleteAccount(ctx context.Context, identityID uuid.UUID) (domain.DeletionReport, error)
	// Configured reports whether a deleter endpoint is available at all.
	Configured() bool
}
