package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/models"
	"github.com/desertthunder/cleanify/internal/shared"
)

const overrideColumns = `id, sequence, track_id, level, strict_mode, should_block, reason, created_at, updated_at, deleted_at`

// OverrideRepository implements [models.Repository] for [models.Override] persistence.
type OverrideRepository struct {
	db *sql.DB
}

// NewOverrideRepository creates a new [OverrideRepository] with the given database connection
func NewOverrideRepository(db *sql.DB) *OverrideRepository {
	return &OverrideRepository{db: db}
}

// Create inserts a new override with generated ID and sequence
func (r *OverrideRepository) Create(o *models.Override) error {
	if err := o.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "overrides")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO overrides (id, sequence, track_id, level, strict_mode, should_block, reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, o.TrackID(), string(o.Level()), o.StrictMode(), o.ShouldBlock(),
		o.Reason(), o.CreatedAt(), o.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert override: %w", err)
	}

	o.SetID(id)
	o.SetSequence(sequence)
	return nil
}

// Get retrieves an override by ID, excluding soft-deleted overrides
func (r *OverrideRepository) Get(id string) (*models.Override, error) {
	query := `SELECT ` + overrideColumns + ` FROM overrides WHERE id = ? AND deleted_at IS NULL`

	o, err := scanOverride(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrOverrideNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query override: %w", err)
	}
	return o, nil
}

// FindByKey retrieves the active override for a track under one policy
func (r *OverrideRepository) FindByKey(trackID string, level lexicon.Level, strictMode bool) (*models.Override, error) {
	query := `
		SELECT ` + overrideColumns + `
		FROM overrides
		WHERE track_id = ? AND level = ? AND strict_mode = ? AND deleted_at IS NULL
	`

	o, err := scanOverride(r.db.QueryRow(query, trackID, string(level), strictMode))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s (%s, strict=%t)", shared.ErrOverrideNotFound, trackID, level, strictMode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query override: %w", err)
	}
	return o, nil
}

// Update modifies the decision of an existing override
func (r *OverrideRepository) Update(o *models.Override) error {
	if err := o.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	o.SetUpdatedAt(now)

	query := `
		UPDATE overrides
		SET should_block = ?, reason = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, o.ShouldBlock(), o.Reason(), now, o.ID())
	if err != nil {
		return fmt.Errorf("failed to update override: %w", err)
	}

	return expectRow(result, o.ID())
}

// Upsert updates the active override with the same key or creates one
func (r *OverrideRepository) Upsert(o *models.Override) (*models.Override, error) {
	existing, err := r.FindByKey(o.TrackID(), o.Level(), o.StrictMode())
	if errors.Is(err, shared.ErrOverrideNotFound) {
		if err := r.Create(o); err != nil {
			return nil, err
		}
		return o, nil
	}
	if err != nil {
		return nil, err
	}

	existing.SetDecision(o.ShouldBlock(), o.Reason())
	if err := r.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete soft-deletes an override by ID
func (r *OverrideRepository) Delete(id string) error {
	query := `
		UPDATE overrides
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}

	return expectRow(result, id)
}

// List retrieves active overrides, optionally filtered by "track_id" and "level"
func (r *OverrideRepository) List(criteria map[string]any) ([]*models.Override, error) {
	query := `SELECT ` + overrideColumns + ` FROM overrides WHERE deleted_at IS NULL`
	args := []any{}

	if trackID, ok := criteria["track_id"].(string); ok && trackID != "" {
		query += " AND track_id = ?"
		args = append(args, trackID)
	}
	if level, ok := criteria["level"].(lexicon.Level); ok && level != "" {
		query += " AND level = ?"
		args = append(args, string(level))
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer rows.Close()

	var overrides []*models.Override
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		overrides = append(overrides, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return overrides, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOverride(s scanner) (*models.Override, error) {
	var (
		id          string
		sequence    int
		trackID     string
		level       string
		strictMode  bool
		shouldBlock bool
		reason      string
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	if err := s.Scan(&id, &sequence, &trackID, &level, &strictMode, &shouldBlock, &reason, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	o := models.NewOverride(sequence, trackID, lexicon.Level(level), strictMode, shouldBlock, reason)
	o.SetID(id)
	o.SetCreatedAt(createdAt)
	o.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		o.SetDeletedAt(&deletedAt.Time)
	}
	return o, nil
}

func expectRow(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w or already deleted: %s", shared.ErrOverrideNotFound, id)
	}
	return nil
}
