package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"account-service/app/domain"
)

func seedReadySession(container *SessionContainer, identity *domain.Identity, profile *domain.Profile) {
	container.Publish(domain.Session{
		Phase:    domain.PhaseReady,
		Identity: identity,
		Profile:  profile,
	})
}

func TestAccountUsecase_UpdateProfile(t *testing.T) {
	identity := testIdentity()
	current := testProfileFor(identity)

	updated := *current
	updated.Name = "Alice Cooper"

	tests := []struct {
		name        string
		attrs       domain.ProfileInput
		seed        bool
		setupMocks  func(engineMocks)
		wantErrKind domain.ErrorKind
		wantPhase   domain.SessionPhase
	}{
		{
			name:  "successful update refreshes from the store",
			attrs: domain.ProfileInput{Name: "Alice Cooper", Age: "31", Description: "still here"},
			seed:  true,
			setupMocks: func(m engineMocks) {
				m.profileGW.EXPECT().
					UpdateProfile(gomock.Any(), identity.ID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, changes domain.ProfileChanges) error {
						assert.Equal(t, "Alice Cooper", changes.Name)
						require.NotNil(t, changes.Age)
						assert.Equal(t, 31, *changes.Age)
						return nil
					})
				m.profileGW.EXPECT().
					GetProfile(gomock.Any(), identity.ID).
					Return(&updated, nil)
			},
			wantPhase: domain.PhaseReady,
		},
		{
			name:        "not authenticated",
			attrs:       domain.ProfileInput{Name: "Alice"},
			seed:        false,
			setupMocks:  func(engineMocks) {},
			wantErrKind: domain.KindInvalidCredentials,
			wantPhase:   domain.PhaseAnonymous,
		},
		{
			name:        "invalid age rejected before the store is touched",
			attrs:       domain.ProfileInput{Name: "Alice", Age: "many"},
			seed:        true,
			setupMocks:  func(engineMocks) {},
			wantErrKind: domain.KindValidation,
			wantPhase:   domain.PhaseReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, container, mocks := newTestEngine(t)
			if tt.seed {
				seedReadySession(container, identity, current)
			}
			tt.setupMocks(mocks)

			profile, err := engine.UpdateProfile(context.Background(), tt.attrs)

			session := container.Session()
			assert.Equal(t, tt.wantPhase, session.Phase)

			if tt.wantErrKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrKind, domain.KindOf(err))
				assert.Nil(t, profile)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, profile)
			assert.Equal(t, "Alice Cooper", profile.Name)
			assert.Equal(t, "Alice Cooper", session.Profile.Name)
		})
	}
}

func TestAccountUsecase_UpdateProfile_ValidationLeavesSessionUntouched(t *testing.T) {
	engine, container, _ := newTestEngine(t)

	identity := testIdentity()
	profile := testProfileFor(identity)
	seedReadySession(container, identity, profile)
	before := container.Session()

	_, err := engine.UpdateProfile(context.Background(), domain.ProfileInput{Age: "not-a-number"})

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	after := container.Session()
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, profile.Name, after.Profile.Name)
}

func TestAccountUsecase_UpdateProfile_StoreFailureKeepsSessionAlive(t *testing.T) {
	engine, container, mocks := newTestEngine(t)

	identity := testIdentity()
	profile := testProfileFor(identity)
	seedReadySession(container, identity, profile)

	mocks.profileGW.EXPECT().
		UpdateProfile(gomock.Any(), identity.ID, gomock.Any()).
		Return(errors.New("write timeout"))

	_, err := engine.UpdateProfile(context.Background(), domain.ProfileInput{Name: "Alice Cooper"})
	require.Error(t, err)

	session := container.Session()
	assert.Equal(t, domain.PhaseReady, session.Phase)
	require.NotNil(t, session.Profile)
	assert.Equal(t, profile.Name, session.Profile.Name)
	assert.Equal(t, domain.KindUnknown, session.Error)
}

func TestAccountUsecase_DeleteAccount(t *testing.T) {
	identity := testIdentity()
	profile := testProfileFor(identity)

	tests := []struct {
		name        string
		seed        bool
		setupMocks  func(engineMocks)
		wantOutcome domain.DeletionOutcome
		wantErrKind domain.ErrorKind
	}{
		{
			name: "full deletion forces logout and resets session",
			seed: true,
			setupMocks: func(m engineMocks) {
				m.deletion.EXPECT().
					DeleteAccount(gomock.Any(), identity.ID).
					Return(domain.FullyDeleted, nil)
				m.authGW.EXPECT().
					Logout(gomock.Any()).
					Return(nil)
			},
			wantOutcome: domain.FullyDeleted,
		},
		{
			name: "degraded deletion still forces logout",
			seed: true,
			setupMocks: func(m engineMocks) {
				m.deletion.EXPECT().
					DeleteAccount(gomock.Any(), identity.ID).
					Return(domain.ProfileOnlyDeleted, nil)
				m.authGW.EXPECT().
					Logout(gomock.Any()).
					Return(errors.New("session already gone"))
			},
			wantOutcome: domain.ProfileOnlyDeleted,
		},
		{
			name: "deletion failure still resets the session",
			seed: true,
			setupMocks: func(m engineMocks) {
				m.deletion.EXPECT().
					DeleteAccount(gomock.Any(), identity.ID).
					Return(domain.DeletionOutcome(""), domain.NewAccountError(
						domain.KindPartialDeletion, "profile row was not deleted", nil))
			},
			wantErrKind: domain.KindPartialDeletion,
		},
		{
			name:        "not authenticated",
			seed:        false,
			setupMocks:  func(engineMocks) {},
			wantErrKind: domain.KindInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, container, mocks := newTestEngine(t)
			if tt.seed {
				seedReadySession(container, identity, profile)
			}
			tt.setupMocks(mocks)

			genBefore := container.Generation()
			outcome, err := engine.DeleteAccount(context.Background())

			if tt.wantErrKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErrKind, domain.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOutcome, outcome)
			}

			// Session teardown is unconditional once an identity was present.
			if tt.seed {
				session := container.Session()
				assert.Equal(t, domain.PhaseAnonymous, session.Phase)
				assert.Nil(t, session.Identity)
				assert.Greater(t, container.Generation(), genBefore)
			}
		})
	}
}

func TestAccountUsecase_Logout_ResetsEvenWhenProviderFails(t *testing.T) {
	engine, container, mocks := newTestEngine(t)

	identity := testIdentity()
	seedReadySession(container, identity, testProfileFor(identity))

	mocks.authGW.EXPECT().
		Logout(gomock.Any()).
		Return(domain.ErrProviderUnavailable)

	err := engine.Logout(context.Background())

	require.Error(t, err)
	session := container.Session()
	assert.Equal(t, domain.PhaseAnonymous, session.Phase)
	assert.Nil(t, session.Identity)
}

func TestAccountUsecase_Bootstrap(t *testing.T) {
	identity := testIdentity()
	existing := testProfileFor(identity)

	tests := []struct {
		name       string
		setupMocks func(engineMocks)
		wantPhase  domain.SessionPhase
		wantErr    bool
	}{
		{
			name: "no provider session stays anonymous",
			setupMocks: func(m engineMocks) {
				m.authGW.EXPECT().
					CurrentIdentity(gomock.Any()).
					Return(nil, nil)
			},
			wantPhase: domain.PhaseAnonymous,
		},
		{
			name: "valid provider session restores ready state",
			setupMocks: func(m engineMocks) {
				m.authGW.EXPECT().
					CurrentIdentity(gomock.Any()).
					Return(identity, nil)
				m.profileGW.EXPECT().
					GetProfile(gomock.Any(), identity.ID).
					Return(existing, nil)
			},
			wantPhase: domain.PhaseReady,
		},
		{
			name: "provider outage fails the bootstrap",
			setupMocks: func(m engineMocks) {
				m.authGW.EXPECT().
					CurrentIdentity(gomock.Any()).
					Return(nil, domain.ErrProviderUnavailable)
			},
			wantPhase: domain.PhaseFailed,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, container, mocks := newTestEngine(t)
			tt.setupMocks(mocks)

			err := engine.Bootstrap(context.Background())

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantPhase, container.Session().Phase)
		})
	}
}

func TestAccountUsecase_RejectsConcurrentMutation(t *testing.T) {
	engine, _, mocks := newTestEngine(t)

	identity := testIdentity()
	existing := testProfileFor(identity)

	entered := make(chan struct{})
	release := make(chan struct{})

	mocks.authGW.EXPECT().
		Login(gomock.Any(), "alice", "password123").
		DoAndReturn(func(context.Context, string, string) (*domain.Identity, error) {
			close(entered)
			<-release
			return identity, nil
		})
	mocks.profileGW.EXPECT().
		GetProfile(gomock.Any(), identity.ID).
		Return(existing, nil)

	done := make(chan error, 1)
	go func() {
		_, err := engine.Login(context.Background(), "alice", "password123")
		done <- err
	}()

	<-entered

	// Second mutation while login is in flight must be rejected, not queued.
	_, err := engine.UpdateProfile(context.Background(), domain.ProfileInput{Name: "x"})
	require.Error(t, err)
	assert.Equal(t, domain.KindOperationInProgress, domain.KindOf(err))

	close(release)
	require.NoError(t, <-done)
}

func TestAccountUsecase_DiscardsResultsAfterTeardown(t *testing.T) {
	engine, container, mocks := newTestEngine(t)

	identity := testIdentity()
	existing := testProfileFor(identity)

	mocks.authGW.EXPECT().
		Login(gomock.Any(), "alice", "password123").
		DoAndReturn(func(context.Context, string, string) (*domain.Identity, error) {
			// A logout lands while the provider call is in flight.
			container.ResetToAnonymous()
			return identity, nil
		})
	mocks.profileGW.EXPECT().
		GetProfile(gomock.Any(), identity.ID).
		Return(existing, nil)

	_, err := engine.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)

	// The late result must not resurrect the session.
	session := container.Session()
	assert.Equal(t, domain.PhaseAnonymous, session.Phase)
	assert.Nil(t, session.Identity)
}

func TestAccountUsecase_GetProfile_MissingRow(t *testing.T) {
	engine, _, mocks := newTestEngine(t)

	identity := testIdentity()
	mocks.profileGW.EXPECT().
		GetProfile(gomock.Any(), identity.ID).
		Return(nil, nil)

	_, err := engine.GetProfile(context.Background(), identity.ID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProfileNotFound))
}
