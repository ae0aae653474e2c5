package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"account-service/app/domain"
	"account-service/app/port"
)

const uniqueViolationCode = "23505"

// ProfileRepository implements port.ProfileRepositoryPort for PostgreSQL.
// The profiles table keys rows by the identity ID; legacy column names
// (nome, idade, descricao) come from the original schema.
type ProfileRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(db DatabaseIface, logger *slog.Logger) port.ProfileRepositoryPort {
	return &ProfileRepository{
		db:     db,
		logger: logger.With("component", "profile_repository"),
	}
}

// Create inserts a profile row. A primary-key collision surfaces as
// domain.ErrDuplicateProfile so the engine can treat the row as already
// reconciled.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, nome, idade, descricao, email, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err := r.db.Exec(ctx, query,
		profile.ID,
		profile.Name,
		profile.Age,
		profile.Description,
		profile.Email,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			r.logger.Info("profile already exists", "profile_id", profile.ID)
			return domain.ErrDuplicateProfile
		}
		r.logger.Error("failed to create profile", "profile_id", profile.ID, "error", err)
		return fmt.Errorf("failed to create profile: %w", err)
	}

	r.logger.Info("profile created", "profile_id", profile.ID)
	return nil
}

// GetByID returns (nil, nil) when no row exists. The engine relies on the
// distinction between a missing row and a failed query.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, nome, idade, descricao, email, created_at, updated_at
		FROM profiles
		WHERE id = $1`

	profile := &domain.Profile{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.Age,
		&profile.Description,
		&profile.Email,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get profile", "profile_id", id, "error", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// List returns all profiles ordered by name. The id tiebreaker keeps the
// order total when names collide.
func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	query := `
		SELECT id, nome, idade, descricao, email, created_at, updated_at
		FROM profiles
		ORDER BY nome ASC, id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("failed to list profiles", "error", err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		profile := &domain.Profile{}
		if err := rows.Scan(
			&profile.ID,
			&profile.Name,
			&profile.Age,
			&profile.Description,
			&profile.Email,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profile rows: %w", err)
	}

	return profiles, nil
}

// Update writes the mutable columns. The store does not echo the full row;
// callers re-fetch through GetByID for the authoritative state.
func (r *ProfileRepository) Update(ctx context.Context, id uuid.UUID, changes domain.ProfileChanges) error {
	query := `
		UPDATE profiles
		SET nome = $2, idade = $3, descricao = $4, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, changes.Name, changes.Age, changes.Description)
	if err != nil {
		r.logger.Error("failed to update profile", "profile_id", id, "error", err)
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}

	r.logger.Info("profile updated", "profile_id", id)
	return nil
}

// Delete removes a profile row. Deleting an absent row is not an error.
func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM profiles WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("failed to delete profile", "profile_id", id, "error", err)
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	r.logger.Info("profile deleted", "profile_id", id)
	return nil
}
