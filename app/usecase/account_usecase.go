package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"account-service/app/domain"
	"account-service/app/port"
)

const minPasswordLength = 8

// AccountUseCase is the reconciliation engine. It coordinates the auth
// gateway and the profile store to keep the invariant that every
// authenticated identity has exactly one profile row, self-healing a
// missing row during login instead of failing outright.
//
// Mutating operations are serialized per instance: a second mutation issued
// while one is in flight is rejected with OPERATION_IN_PROGRESS. Reads are
// unconstrained.
type AccountUseCase struct {
	authGW    port.AuthGateway
	profileGW port.ProfileGateway
	deletion  port.DeletionUsecase
	container *SessionContainer
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight bool
}

// NewAccountUseCase creates a new AccountUseCase instance.
func NewAccountUseCase(
	authGW port.AuthGateway,
	profileGW port.ProfileGateway,
	deletion port.DeletionUsecase,
	container *SessionContainer,
	logger *slog.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		authGW:    authGW,
		profileGW: profileGW,
		deletion:  deletion,
		container: container,
		logger:    logger.With("component", "account_usecase"),
	}
}

var _ port.AccountUsecase = (*AccountUseCase)(nil)

// Session returns the current session snapshot.
func (uc *AccountUseCase) Session() domain.Session {
	return uc.container.Session()
}

// Subscribe registers a session observer.
func (uc *AccountUseCase) Subscribe(fn func(domain.Session)) (cancel func()) {
	return uc.container.Subscribe(fn)
}

// Register provisions an identity and its profile row. The profile stores
// the original user-supplied email; the normalized form the provider saw is
// an internal artifact. A profile row that already exists is treated as
// already reconciled. Any other creation failure fails the registration and
// leaves the identity provisioned without a profile, a known
// partial-failure state that the next login self-heals.
func (uc *AccountUseCase) Register(ctx context.Context, email, password string, attrs domain.ProfileInput) (*domain.Profile, error) {
	changes, err := attrs.Normalize()
	if err != nil {
		return nil, err
	}
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	if err := uc.beginMutation(); err != nil {
		return nil, err
	}
	defer uc.endMutation()

	gen := uc.container.Generation()
	uc.container.Publish(domain.Session{Phase: domain.PhaseAuthenticating, IsLoading: true})

	identity, err := uc.authGW.Register(ctx, email, password, changes.Name)
	if err != nil {
		uc.failWith(gen, nil, err)
		return nil, err
	}

	uc.publishIf(gen, domain.Session{
		Phase:     domain.PhaseProfileResolving,
		Identity:  identity,
		IsLoading: true,
	})

	profile, err := domain.NewProfile(identity.ID, identity.OriginalEmail, changes)
	if err != nil {
		uc.failWith(gen, identity, err)
		return nil, err
	}

	if err := uc.profileGW.CreateProfile(ctx, profile); err != nil {
		if !errors.Is(err, domain.ErrDuplicateProfile) {
			// The identity now exists without a profile. Surface the
			// distinct kind instead of a generic failure; the next login
			// self-heals the missing row.
			uc.logger.Warn("identity provisioned without profile",
				"identity_id", identity.ID,
				"error", err)
			recErr := domain.NewAccountError(domain.KindReconciliationFailed,
				"profile creation failed after registration", err)
			uc.failWith(gen, identity, recErr)
			return nil, recErr
		}
		uc.logger.Info("profile already reconciled", "identity_id", identity.ID)
	}

	fetched, err := uc.confirmProfile(ctx, identity)
	if err != nil {
		uc.failWith(gen, identity, err)
		return nil, err
	}

	uc.applyReady(gen, identity, fetched)
	return fetched, nil
}

// Login authenticates and resolves the profile row, creating one with
// best-effort defaults when it is missing (leftover of a failed
// registration or an externally provisioned identity).
func (uc *AccountUseCase) Login(ctx context.Context, email, password string) (*domain.Profile, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	if err := uc.beginMutation(); err != nil {
		return nil, err
	}
	defer uc.endMutation()

	gen := uc.container.Generation()
	uc.container.Publish(domain.Session{Phase: domain.PhaseAuthenticating, IsLoading: true})

	identity, err := uc.authGW.Login(ctx, email, password)
	if err != nil {
		uc.failWith(gen, nil, err)
		return nil, err
	}

	uc.publishIf(gen, domain.Session{
		Phase:     domain.PhaseProfileResolving,
		Identity:  identity,
		IsLoading: true,
	})

	profile, err := uc.resolveProfile(ctx, identity)
	if err != nil {
		uc.failWith(gen, identity, err)
		return nil, err
	}

	uc.applyReady(gen, identity, profile)
	return profile, nil
}

// Bootstrap restores the session from a still-valid provider session at
// application start, resolving the profile the same way login does.
func (uc *AccountUseCase) Bootstrap(ctx context.Context) error {
	if err := uc.beginMutation(); err != nil {
		return err
	}
	defer uc.endMutation()

	gen := uc.container.Generation()
	uc.container.Publish(domain.Session{Phase: domain.PhaseAuthenticating, IsLoading: true})

	identity, err := uc.authGW.CurrentIdentity(ctx)
	if err != nil {
		uc.failWith(gen, nil, err)
		return err
	}
	if identity == nil {
		uc.publishIf(gen, domain.AnonymousSession())
		return nil
	}

	uc.publishIf(gen, domain.Session{
		Phase:     domain.PhaseProfileResolving,
		Identity:  identity,
		IsLoading: true,
	})

	profile, err := uc.resolveProfile(ctx, identity)
	if err != nil {
		uc.failWith(gen, identity, err)
		return err
	}

	uc.applyReady(gen, identity, profile)
	return nil
}

// UpdateProfile writes validated attributes to the store and refreshes the
// session profile from the authoritative row rather than trusting the
// update call's echo. Validation failures leave the session untouched.
func (uc *AccountUseCase) UpdateProfile(ctx context.Context, attrs domain.ProfileInput) (*domain.Profile, error) {
	changes, err := attrs.Normalize()
	if err != nil {
		return nil, err
	}

	if err := uc.beginMutation(); err != nil {
		return nil, err
	}
	defer uc.endMutation()

	current := uc.container.Session()
	if !current.IsReady() {
		return nil, domain.ErrNotAuthenticated
	}

	gen := uc.container.Generation()
	identity := current.Identity

	uc.publishIf(gen, domain.Session{
		Phase:     domain.PhaseReady,
		Identity:  identity,
		Profile:   current.Profile,
		IsLoading: true,
	})

	if err := uc.profileGW.UpdateProfile(ctx, identity.ID, changes); err != nil {
		// Keep the session alive with the previous profile; only the error
		// kind changes.
		uc.publishIf(gen, domain.Session{
			Phase:    domain.PhaseReady,
			Identity: identity,
			Profile:  current.Profile,
			Error:    domain.KindOf(err),
		})
		return nil, err
	}

	fetched, err := uc.confirmProfile(ctx, identity)
	if err != nil {
		uc.failWith(gen, identity, err)
		return nil, err
	}

	uc.applyReady(gen, identity, fetched)
	return fetched, nil
}

// DeleteAccount delegates to the deletion orchestrator and then
// unconditionally tears the session down: staying logged in against a
// half-deleted identity is worse than an inconsistent audit trail. On a
// degraded deletion a forced provider logout is issued because the
// credentials may still technically work.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context) (domain.DeletionOutcome, error) {
	if err := uc.beginMutation(); err != nil {
		return "", err
	}
	defer uc.endMutation()

	current := uc.container.Session()
	if current.Identity == nil {
		return "", domain.ErrNotAuthenticated
	}

	outcome, err := uc.deletion.DeleteAccount(ctx, current.Identity.ID)
	if err == nil {
		if logoutErr := uc.authGW.Logout(ctx); logoutErr != nil {
			uc.logger.Warn("forced logout after account deletion failed",
				"identity_id", current.Identity.ID,
				"error", logoutErr)
		}
	}

	uc.container.ResetToAnonymous()
	return outcome, err
}

// Logout revokes the provider session and resets the session even when the
// provider call fails; a known-stale session must not stay resident.
func (uc *AccountUseCase) Logout(ctx context.Context) error {
	if err := uc.beginMutation(); err != nil {
		return err
	}
	defer uc.endMutation()

	err := uc.authGW.Logout(ctx)
	uc.container.ResetToAnonymous()
	return err
}

// RequestPasswordReset starts a provider recovery flow. It does not touch
// the session.
func (uc *AccountUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return domain.NewAccountError(domain.KindValidation, "email is required", nil)
	}
	return uc.authGW.RequestPasswordReset(ctx, email)
}

// ListProfiles returns all profiles in stable name order.
func (uc *AccountUseCase) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	return uc.profileGW.ListProfiles(ctx)
}

// GetProfile returns one profile; ErrProfileNotFound when the row is
// missing.
func (uc *AccountUseCase) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	profile, err := uc.profileGW.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

// resolveProfile fetches the profile for an authenticated identity,
// self-healing a missing row once. Profile existence is only ever checked
// after auth success: the identity is the root of trust.
func (uc *AccountUseCase) resolveProfile(ctx context.Context, identity *domain.Identity) (*domain.Profile, error) {
	profile, err := uc.profileGW.GetProfile(ctx, identity.ID)
	if err != nil {
		return nil, domain.NewAccountError(domain.KindReconciliationFailed,
			"profile lookup failed", err)
	}
	if profile != nil {
		return profile, nil
	}

	uc.logger.Info("profile missing for authenticated identity, self-healing",
		"identity_id", identity.ID)

	defaults, err := domain.DefaultProfile(identity)
	if err != nil {
		return nil, domain.NewAccountError(domain.KindReconciliationFailed,
			"failed to build default profile", err)
	}

	// A duplicate here means another writer won the race; the re-fetch
	// below settles it either way.
	if err := uc.profileGW.CreateProfile(ctx, defaults); err != nil && !errors.Is(err, domain.ErrDuplicateProfile) {
		return nil, domain.NewAccountError(domain.KindReconciliationFailed,
			"self-heal profile creation failed", err)
	}

	// Retry-once bound: one create, one confirming re-fetch, then give up
	// rather than loop against a permanently broken store.
	profile, err = uc.profileGW.GetProfile(ctx, identity.ID)
	if err != nil || profile == nil {
		return nil, domain.NewAccountError(domain.KindReconciliationFailed,
			"profile still missing after self-heal", err)
	}

	return profile, nil
}

// confirmProfile re-fetches the row that must exist at this point.
func (uc *AccountUseCase) confirmProfile(ctx context.Context, identity *domain.Identity) (*domain.Profile, error) {
	profile, err := uc.profileGW.GetProfile(ctx, identity.ID)
	if err != nil {
		return nil, domain.NewAccountError(domain.KindReconciliationFailed,
			"profile lookup failed", err)
	}
	if profile == nil {
		return nil, domain.NewAccountError(domain.KindReconciliationFailed,
			"profile missing after write", nil)
	}
	return profile, nil
}

// applyReady publishes the terminal success state after verifying the
// linking invariant and the stale-response guard.
func (uc *AccountUseCase) applyReady(gen uint64, identity *domain.Identity, profile *domain.Profile) {
	if !profile.BelongsTo(identity) {
		uc.logger.Error("profile/identity mismatch",
			"identity_id", identity.ID,
			"profile_id", profile.ID)
		uc.failWith(gen, identity, domain.NewAccountError(domain.KindReconciliationFailed,
			"profile does not belong to identity", nil))
		return
	}

	uc.publishIf(gen, domain.Session{
		Phase:    domain.PhaseReady,
		Identity: identity,
		Profile:  profile,
	})
}

// failWith publishes the failed state carrying the taxonomy kind. The raw
// cause stays in the returned error and the logs, never in the session.
func (uc *AccountUseCase) failWith(gen uint64, identity *domain.Identity, err error) {
	uc.publishIf(gen, domain.Session{
		Phase:    domain.PhaseFailed,
		Identity: identity,
		Error:    domain.KindOf(err),
	})
}

// publishIf applies a snapshot unless the session generation moved while
// the remote calls were in flight; late-arriving results of an abandoned
// operation are discarded.
func (uc *AccountUseCase) publishIf(gen uint64, session domain.Session) {
	if uc.container.Generation() != gen {
		uc.logger.Info("discarding stale session update", "phase", session.Phase)
		return
	}
	uc.container.Publish(session)
}

func (uc *AccountUseCase) beginMutation() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.inFlight {
		return domain.ErrOperationInProgress
	}
	uc.inFlight = true
	return nil
}

func (uc *AccountUseCase) endMutation() {
	uc.mu.Lock()
	uc.inFlight = false
	uc.mu.Unlock()
}

func validateCredentials(email, password string) error {
	if email == "" {
		return domain.NewAccountError(domain.KindValidation, "email is required", nil)
	}
	if len(password) < minPasswordLength {
		return domain.NewAccountError(domain.KindValidation, "password must be at least 8 characters", nil)
	}
	return nil
}
