package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"account-service/app/domain"
	"account-service/app/port"
)

// DeletionUseCase removes both the profile row and the identity record. The
// preferred path is one remote privileged procedure that deletes both
// server-side: client credentials cannot delete other identities' auth
// records, and revoking your own session before deleting the profile risks
// orphaning the row. Without a configured procedure it falls back to the
// client-side sequence, profile first.
type DeletionUseCase struct {
	deleter   port.AccountDeleterPort
	profileGW port.ProfileGateway
	provider  port.IdentityProviderPort
	logger    *slog.Logger
}

// NewDeletionUseCase creates a new DeletionUseCase instance.
func NewDeletionUseCase(
	deleter port.AccountDeleterPort,
	profileGW port.ProfileGateway,
	provider port.IdentityProviderPort,
	logger *slog.Logger,
) *DeletionUseCase {
	return &DeletionUseCase{
		deleter:   deleter,
		profileGW: profileGW,
		provider:  provider,
		logger:    logger.With("component", "deletion_usecase"),
	}
}

// DeleteAccount deletes the account and reports how far the deletion got.
// A report of profile-deleted-but-identity-kept is a degraded success, not
// an error; the caller still tears the session down and forces a provider
// logout.
func (uc *DeletionUseCase) DeleteAccount(ctx context.Context, identityID uuid.UUID) (domain.DeletionOutcome, error) {
	if uc.deleter != nil && uc.deleter.Configured() {
		return uc.deleteRemotely(ctx, identityID)
	}
	return uc.deleteLocally(ctx, identityID)
}

func (uc *DeletionUseCase) deleteRemotely(ctx context.Context, identityID uuid.UUID) (domain.DeletionOutcome, error) {
	report, err := uc.deleter.DeleteAccount(ctx, identityID)
	if err != nil {
		uc.logger.Error("deletion procedure failed", "identity_id", identityID, "error", err)
		return "", err
	}

	outcome, err := report.Outcome()
	if err != nil {
		uc.logger.Error("deletion procedure left account intact", "identity_id", identityID, "error", err)
		return "", err
	}

	if outcome == domain.ProfileOnlyDeleted {
		uc.logger.Warn("identity record survived account deletion",
			"identity_id", identityID)
	}

	return outcome, nil
}

// deleteLocally deletes the profile row directly and then the identity via
// the provider admin API. Profile first: a surviving identity self-heals on
// the next login, a surviving orphaned profile row does not.
func (uc *DeletionUseCase) deleteLocally(ctx context.Context, identityID uuid.UUID) (domain.DeletionOutcome, error) {
	if err := uc.profileGW.DeleteProfile(ctx, identityID); err != nil {
		return "", domain.NewAccountError(domain.KindPartialDeletion,
			"profile deletion failed", err)
	}

	if err := uc.provider.DeleteIdentity(ctx, identityID); err != nil {
		uc.logger.Warn("identity deletion failed after profile removal",
			"identity_id", identityID,
			"error", err)
		return domain.ProfileOnlyDeleted, nil
	}

	uc.logger.Info("account fully deleted", "identity_id", identityID)
	return domain.FullyDeleted, nil
}
