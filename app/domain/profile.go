package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is the application-owned row keyed by the identity ID. It is
// mutated only through the reconciliation engine's update path and deleted
// only through the deletion orchestrator.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Age         *int      `json:"age"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileInput carries user-entered attributes as they arrive from a form:
// everything is a string, including age. Normalize converts and validates.
type ProfileInput struct {
	Name        string `json:"name"`
	Age         string `json:"age"`
	Description string `json:"description"`
}

// ProfileChanges is the validated, typed form of a profile mutation.
type ProfileChanges struct {
	Name        string
	Age         *int
	Description string
}

// Normalize validates the raw input and converts it to typed changes. A
// non-numeric or negative age yields a VALIDATION_ERROR.
func (in ProfileInput) Normalize() (ProfileChanges, error) {
	changes := ProfileChanges{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	}

	if raw := strings.TrimSpace(in.Age); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return ProfileChanges{}, NewAccountError(KindValidation,
				fmt.Sprintf("age must be a number, got %q", raw), err)
		}
		if age < 0 {
			return ProfileChanges{}, NewAccountError(KindValidation,
				fmt.Sprintf("age must not be negative, got %d", age), nil)
		}
		changes.Age = &age
	}

	return changes, nil
}

// NewProfile builds a profile row for an identity with validation. The email
// is the original user-supplied one, never the normalized provider artifact.
func NewProfile(identityID uuid.UUID, email string, changes ProfileChanges) (*Profile, error) {
	if identityID == uuid.Nil {
		return nil, fmt.Errorf("identity ID is required")
	}
	if changes.Age != nil && *changes.Age < 0 {
		return nil, NewAccountError(KindValidation, "age must not be negative", nil)
	}

	now := time.Now()

	return &Profile{
		ID:          identityID,
		Name:        changes.Name,
		Email:       email,
		Age:         changes.Age,
		Description: changes.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// DefaultProfile builds the best-effort row used by the self-heal path when
// an authenticated identity has no profile: name from provider metadata or
// empty, age unset, empty description, email from the identity.
func DefaultProfile(identity *Identity) (*Profile, error) {
	return NewProfile(identity.ID, identity.OriginalEmail, ProfileChanges{
		Name:        identity.Name,
		Description: "",
	})
}

// Apply merges validated changes into the profile.
func (p *Profile) Apply(changes ProfileChanges) {
	p.Name = changes.Name
	p.Age = changes.Age
	p.Description = changes.Description
	p.UpdatedAt = time.Now()
}

// BelongsTo reports whether the profile row is linked to the given identity.
func (p *Profile) BelongsTo(identity *Identity) bool {
	return identity != nil && p.ID == identity.ID
}
