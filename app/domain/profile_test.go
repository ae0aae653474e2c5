package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileInput_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		input   ProfileInput
		wantAge *int
		wantErr bool
	}{
		{
			name:    "numeric age converts",
			input:   ProfileInput{Name: "Alice", Age: "30"},
			wantAge: intPtr(30),
		},
		{
			name:  "empty age stays unset",
			input: ProfileInput{Name: "Alice"},
		},
		{
			name:    "age with surrounding spaces converts",
			input:   ProfileInput{Name: "Alice", Age: " 42 "},
			wantAge: intPtr(42),
		},
		{
			name:    "non-numeric age rejected",
			input:   ProfileInput{Name: "Alice", Age: "thirty"},
			wantErr: true,
		},
		{
			name:    "negative age rejected",
			input:   ProfileInput{Name: "Alice", Age: "-1"},
			wantErr: true,
		},
		{
			name:    "zero age allowed",
			input:   ProfileInput{Name: "Alice", Age: "0"},
			wantAge: intPtr(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes, err := tt.input.Normalize()

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindValidation, KindOf(err))
				return
			}

			require.NoError(t, err)
			if tt.wantAge == nil {
				assert.Nil(t, changes.Age)
			} else {
				require.NotNil(t, changes.Age)
				assert.Equal(t, *tt.wantAge, *changes.Age)
			}
		})
	}
}

func TestProfileInput_Normalize_TrimsName(t *testing.T) {
	changes, err := ProfileInput{Name: "  Alice  "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Alice", changes.Name)
}

func TestNewProfile(t *testing.T) {
	id := uuid.New()

	profile, err := NewProfile(id, "alice", ProfileChanges{Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, id, profile.ID)
	assert.Equal(t, "alice", profile.Email)
	assert.False(t, profile.CreatedAt.IsZero())

	_, err = NewProfile(uuid.Nil, "alice", ProfileChanges{})
	assert.Error(t, err)
}

func TestDefaultProfile(t *testing.T) {
	identity := &Identity{
		ID:              uuid.New(),
		EmailNormalized: "alice@example.com",
		OriginalEmail:   "alice",
		Name:            "Alice",
	}

	profile, err := DefaultProfile(identity)
	require.NoError(t, err)

	// Defaults link to the identity, keep the original email, and leave age
	// unset.
	assert.Equal(t, identity.ID, profile.ID)
	assert.Equal(t, "alice", profile.Email)
	assert.Equal(t, "Alice", profile.Name)
	assert.Nil(t, profile.Age)
	assert.Empty(t, profile.Description)
}

func TestProfile_BelongsTo(t *testing.T) {
	identity := &Identity{ID: uuid.New()}
	profile := &Profile{ID: identity.ID}

	assert.True(t, profile.BelongsTo(identity))
	assert.False(t, profile.BelongsTo(&Identity{ID: uuid.New()}))
	assert.False(t, profile.BelongsTo(nil))
}

func TestProfile_Apply(t *testing.T) {
	profile := &Profile{ID: uuid.New(), Name: "Alice"}
	age := 33

	profile.Apply(ProfileChanges{Name: "Alice Cooper", Age: &age, Description: "updated"})

	assert.Equal(t, "Alice Cooper", profile.Name)
	require.NotNil(t, profile.Age)
	assert.Equal(t, 33, *profile.Age)
	assert.Equal(t, "updated", profile.Description)
}

func intPtr(v int) *int {
	return &v
}
