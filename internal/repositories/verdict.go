package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/models"
	"github.com/desertthunder/cleanify/internal/shared"
)

const verdictColumns = `id, sequence, track_id, title, artist, level, strict_mode, should_block, has_lyrics, confidence, reason, flagged_words, flagged_phrases, created_at`

// VerdictRepository stores the append-only verdict history.
type VerdictRepository struct {
	db *sql.DB
}

// NewVerdictRepository creates a new [VerdictRepository] with the given database connection
func NewVerdictRepository(db *sql.DB) *VerdictRepository {
	return &VerdictRepository{db: db}
}

// Create inserts a verdict record with generated ID and sequence
func (r *VerdictRepository) Create(v *models.VerdictRecord) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	words, err := json.Marshal(nonNil(v.FlaggedWords()))
	if err != nil {
		return fmt.Errorf("failed to encode flagged words: %w", err)
	}
	phrases, err := json.Marshal(nonNil(v.FlaggedPhrases()))
	if err != nil {
		return fmt.Errorf("failed to encode flagged phrases: %w", err)
	}

	sequence, err := NextSequence(r.db, "verdicts")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	track := v.Track()

	query := `
		INSERT INTO verdicts (` + verdictColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, track.ID, track.Name, track.Artist, string(v.Level()), v.StrictMode(),
		v.ShouldBlock(), v.HasLyrics(), v.Confidence(), v.Reason(), string(words), string(phrases), v.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert verdict: %w", err)
	}

	v.SetID(id)
	return nil
}

// Get retrieves a verdict record by ID
func (r *VerdictRepository) Get(id string) (*models.VerdictRecord, error) {
	query := `SELECT ` + verdictColumns + ` FROM verdicts WHERE id = ?`

	v, err := scanVerdict(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("verdict not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query verdict: %w", err)
	}
	return v, nil
}

// List retrieves verdicts newest first.
//
// Supported criteria: "track_id" (string), "level" ([lexicon.Level]), "blocked" (bool) and "limit" (int).
func (r *VerdictRepository) List(criteria map[string]any) ([]*models.VerdictRecord, error) {
	query := `SELECT ` + verdictColumns + ` FROM verdicts WHERE 1 = 1`
	args := []any{}

	if trackID, ok := criteria["track_id"].(string); ok && trackID != "" {
		query += " AND track_id = ?"
		args = append(args, trackID)
	}
	if level, ok := criteria["level"].(lexicon.Level); ok && level != "" {
		query += " AND level = ?"
		args = append(args, string(level))
	}
	if blocked, ok := criteria["blocked"].(bool); ok {
		query += " AND should_block = ?"
		args = append(args, blocked)
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []*models.VerdictRecord
	for rows.Next() {
		v, err := scanVerdict(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan verdict: %w", err)
		}
		verdicts = append(verdicts, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return verdicts, nil
}

// Count returns the number of stored verdicts
func (r *VerdictRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM verdicts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count verdicts: %w", err)
	}
	return n, nil
}

func scanVerdict(s scanner) (*models.VerdictRecord, error) {
	var (
		id          string
		sequence    int
		f           models.VerdictFields
		level       string
		wordsJSON   string
		phrasesJSON string
		createdAt   time.Time
	)

	err := s.Scan(&id, &sequence, &f.Track.ID, &f.Track.Name, &f.Track.Artist, &level, &f.StrictMode,
		&f.ShouldBlock, &f.HasLyrics, &f.Confidence, &f.Reason, &wordsJSON, &phrasesJSON, &createdAt)
	if err != nil {
		return nil, err
	}

	f.Level = lexicon.Level(level)
	if err := decodeTerms(wordsJSON, &f.FlaggedWords); err != nil {
		return nil, err
	}
	if err := decodeTerms(phrasesJSON, &f.FlaggedPhrases); err != nil {
		return nil, err
	}

	v := models.NewVerdictRecord(sequence, f)
	v.SetID(id)
	v.SetCreatedAt(createdAt)
	return v, nil
}

func decodeTerms(raw string, dst *[]string) error {
	if raw == "" {
		*dst = []string{}
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("failed to decode flagged terms: %w", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
