package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{
			name: "nil error has no kind",
			err:  nil,
			want: "",
		},
		{
			name: "account error carries its kind",
			err:  NewAccountError(KindInvalidCredentials, "nope", nil),
			want: KindInvalidCredentials,
		},
		{
			name: "wrapped account error still resolves",
			err:  fmt.Errorf("outer: %w", NewAccountError(KindProviderUnavailable, "down", nil)),
			want: KindProviderUnavailable,
		},
		{
			name: "foreign error maps to unknown",
			err:  errors.New("something else"),
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestAccountError_IsMatchesByKind(t *testing.T) {
	specific := NewAccountError(KindInvalidCredentials, "password mismatch for alice", nil)

	assert.True(t, errors.Is(specific, ErrInvalidCredentials))
	assert.False(t, errors.Is(specific, ErrDuplicateIdentity))

	wrapped := fmt.Errorf("login: %w", specific)
	assert.True(t, errors.Is(wrapped, ErrInvalidCredentials))
}

func TestAccountError_MessageHidesCauseFromKind(t *testing.T) {
	cause := errors.New("pq: duplicate key value violates unique constraint")
	err := NewAccountError(KindReconciliationFailed, "profile creation failed", cause)

	assert.Equal(t, KindReconciliationFailed, KindOf(err))
	assert.Contains(t, err.Error(), "profile creation failed")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestDeletionReport_Outcome(t *testing.T) {
	tests := []struct {
		name        string
		report      DeletionReport
		wantOutcome DeletionOutcome
		wantErr     bool
	}{
		{
			name:        "both deleted",
			report:      DeletionReport{Success: true, ProfileDeleted: true, IdentityDeleted: true},
			wantOutcome: FullyDeleted,
		},
		{
			name:        "identity survived",
			report:      DeletionReport{Success: true, ProfileDeleted: true},
			wantOutcome: ProfileOnlyDeleted,
		},
		{
			name:    "profile survived",
			report:  DeletionReport{Success: false},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := tt.report.Outcome()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, KindPartialDeletion, KindOf(err))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
		})
	}
}
