package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		defaultDomain string
		want          string
	}{
		{
			name:  "bare handle gets default domain",
			input: "alice",
			want:  "alice@example.com",
		},
		{
			name:          "bare handle with custom default domain",
			input:         "alice",
			defaultDomain: "corp.internal",
			want:          "alice@corp.internal",
		},
		{
			name:  "dotless domain part gets .com",
			input: "alice@corp",
			want:  "alice@corp.com",
		},
		{
			name:  "well-formed address unchanged",
			input: "alice@corp.io",
			want:  "alice@corp.io",
		},
		{
			name:  "subdomain address unchanged",
			input: "alice@mail.corp.io",
			want:  "alice@mail.corp.io",
		},
		{
			name:  "trailing at-sign is left alone",
			input: "alice@",
			want:  "alice@",
		},
		{
			name:  "handle with dots still gets default domain",
			input: "alice.smith",
			want:  "alice.smith@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeEmail(tt.input, tt.defaultDomain)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewIdentity(t *testing.T) {
	id := uuid.New()

	identity, err := NewIdentity(id, "alice@example.com", "alice")
	require.NoError(t, err)
	assert.Equal(t, id, identity.ID)
	assert.Equal(t, "alice@example.com", identity.EmailNormalized)
	assert.Equal(t, "alice", identity.OriginalEmail)

	// Original falls back to the normalized form when absent.
	identity, err = NewIdentity(id, "alice@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", identity.OriginalEmail)

	_, err = NewIdentity(uuid.Nil, "alice@example.com", "alice")
	assert.Error(t, err)

	_, err = NewIdentity(id, "", "alice")
	assert.Error(t, err)
}
