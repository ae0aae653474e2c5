package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-service/app/domain"
	"account-service/app/utils/logger"
)

func createTestProfileRepository(t *testing.T) (*ProfileRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	repo := NewProfileRepository(mockDB, testLogger).(*ProfileRepository)
	return repo, mockDB
}

func createTestProfile(t *testing.T) *domain.Profile {
	t.Helper()

	age := 28
	now := time.Now()
	return &domain.Profile{
		ID:          uuid.New(),
		Name:        "Alice",
		Email:       "alice",
		Age:         &age,
		Description: "hello",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestProfileRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		setupDB func(pgxmock.PgxPoolIface, *domain.Profile)
		wantErr error
	}{
		{
			name: "successful insert",
			setupDB: func(mockDB pgxmock.PgxPoolIface, profile *domain.Profile) {
				mockDB.ExpectExec("INSERT INTO profiles").
					WithArgs(
						profile.ID,
						profile.Name,
						profile.Age,
						profile.Description,
						profile.Email,
						profile.CreatedAt,
						profile.UpdatedAt,
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "unique violation maps to duplicate profile",
			setupDB: func(mockDB pgxmock.PgxPoolIface, profile *domain.Profile) {
				mockDB.ExpectExec("INSERT INTO profiles").
					WithArgs(
						profile.ID,
						profile.Name,
						profile.Age,
						profile.Description,
						profile.Email,
						profile.CreatedAt,
						profile.UpdatedAt,
					).
					WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})
			},
			wantErr: domain.ErrDuplicateProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestProfileRepository(t)
			defer mockDB.Close()

			profile := createTestProfile(t)
			tt.setupDB(mockDB, profile)

			err := repo.Create(context.Background(), profile)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestProfileRepository_GetByID(t *testing.T) {
	repo, mockDB := createTestProfileRepository(t)
	defer mockDB.Close()

	profile := createTestProfile(t)

	rows := pgxmock.NewRows([]string{
		"id", "nome", "idade", "descricao", "email", "created_at", "updated_at",
	}).AddRow(
		profile.ID, profile.Name, profile.Age, profile.Description,
		profile.Email, profile.CreatedAt, profile.UpdatedAt,
	)

	mockDB.ExpectQuery("SELECT id, nome, idade, descricao, email, created_at, updated_at").
		WithArgs(profile.ID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), profile.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, profile.ID, got.ID)
	assert.Equal(t, profile.Name, got.Name)
	assert.Equal(t, profile.Email, got.Email)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestProfileRepository_GetByID_MissingRowIsNilNil(t *testing.T) {
	repo, mockDB := createTestProfileRepository(t)
	defer mockDB.Close()

	id := uuid.New()
	mockDB.ExpectQuery("SELECT id, nome, idade, descricao, email, created_at, updated_at").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "nome", "idade", "descricao", "email", "created_at", "updated_at",
		}))

	got, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestProfileRepository_List_OrderedByName(t *testing.T) {
	repo, mockDB := createTestProfileRepository(t)
	defer mockDB.Close()

	now := time.Now()
	first := uuid.New()
	second := uuid.New()

	rows := pgxmock.NewRows([]string{
		"id", "nome", "idade", "descricao", "email", "created_at", "updated_at",
	}).
		AddRow(first, "Alice", (*int)(nil), "", "alice", now, now).
		AddRow(second, "Bob", (*int)(nil), "", "bob", now, now)

	mockDB.ExpectQuery("ORDER BY nome ASC, id ASC").
		WillReturnRows(rows)

	profiles, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Alice", profiles[0].Name)
	assert.Equal(t, "Bob", profiles[1].Name)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestProfileRepository_Update(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{
			name:     "successful update",
			affected: 1,
		},
		{
			name:     "missing row maps to not found",
			affected: 0,
			wantErr:  domain.ErrProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestProfileRepository(t)
			defer mockDB.Close()

			id := uuid.New()
			age := 29
			changes := domain.ProfileChanges{Name: "Alice", Age: &age, Description: "x"}

			mockDB.ExpectExec("UPDATE profiles").
				WithArgs(id, changes.Name, changes.Age, changes.Description).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			err := repo.Update(context.Background(), id, changes)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestProfileRepository_Delete_AbsentRowIsNotAnError(t *testing.T) {
	repo, mockDB := createTestProfileRepository(t)
	defer mockDB.Close()

	id := uuid.New()
	mockDB.ExpectExec("DELETE FROM profiles").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)

	require.NoError(t, err)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
