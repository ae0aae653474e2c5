package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultEmailDomain is appended to bare login handles that carry no domain
// part. The identity provider rejects syntactically invalid addresses, so a
// handle like "alice" is sent upstream as "alice@example.com" while the
// original input stays the user-facing email.
const DefaultEmailDomain = "example.com"

// Identity references a record owned by the external identity provider. The
// engine never mutates it; it only links profiles to it by ID.
type Identity struct {
	ID              uuid.UUID `json:"id"`
	EmailNormalized string    `json:"email_normalized"`
	OriginalEmail   string    `json:"original_email"`
	Name            string    `json:"name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewIdentity builds an identity reference with validation.
func NewIdentity(id uuid.UUID, emailNormalized, originalEmail string) (*Identity, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("identity ID is required")
	}
	if emailNormalized == "" {
		return nil, fmt.Errorf("normalized email is required")
	}
	if originalEmail == "" {
		originalEmail = emailNormalized
	}

	return &Identity{
		ID:              id,
		EmailNormalized: emailNormalized,
		OriginalEmail:   originalEmail,
		CreatedAt:       time.Now(),
	}, nil
}

// NormalizeEmail makes a user-supplied login handle acceptable to the
// identity provider's address validator. A handle without "@" gets the
// default domain appended; a domain part without a dot gets ".com" appended.
// The result is a provider-side artifact only; callers must keep the
// original input for display and profile storage.
func NormalizeEmail(input, defaultDomain string) string {
	if defaultDomain == "" {
		defaultDomain = DefaultEmailDomain
	}

	if !strings.Contains(input, "@") {
		return input + "@" + defaultDomain
	}

	parts := strings.SplitN(input, "@", 2)
	if len(parts) == 2 && parts[1] != "" && !strings.Contains(parts[1], ".") {
		return parts[0] + "@" + parts[1] + ".com"
	}

	return input
}
