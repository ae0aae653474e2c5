package domain

import "github.com/google/uuid"

// DeletionOutcome describes how far an account deletion got.
type DeletionOutcome string

const (
	// FullyDeleted means both the profile row and the identity record are gone.
	FullyDeleted DeletionOutcome = "fully_deleted"
	// ProfileOnlyDeleted means the profile row was removed but the identity
	// record survived. The caller must still tear the session down and force
	// a provider logout: the credentials may be technically valid, but the
	// application treats the account as gone.
	ProfileOnlyDeleted DeletionOutcome = "profile_only_deleted"
)

// DeletionReport is the response of the remote privileged deletion
// procedure.
type DeletionReport struct {
	Success         bool `json:"success"`
	ProfileDeleted  bool `json:"profile_deleted"`
	IdentityDeleted bool `json:"identity_deleted"`
}

// Outcome interprets the report. A report that kept the profile row is a
// partial-deletion failure, not a degraded success.
func (r DeletionReport) Outcome() (DeletionOutcome, error) {
	if !r.ProfileDeleted {
		return "", NewAccountError(KindPartialDeletion, "profile row was not deleted", nil)
	}
	if !r.IdentityDeleted {
		return ProfileOnlyDeleted, nil
	}
	return FullyDeleted, nil
}

// DeletionRequest is the input of the remote privileged procedure.
type DeletionRequest struct {
	IdentityID uuid.UUID `json:"identity_id"`
}
