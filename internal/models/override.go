package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/shared"
)

// Override is a persisted parent decision for one track under one (level, strict mode) policy.
type Override struct {
	id          string
	sequence    int
	trackID     string
	level       lexicon.Level
	strictMode  bool
	shouldBlock bool
	reason      string
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewOverride creates a new [Override] with timestamps set to now.
func NewOverride(sequence int, trackID string, level lexicon.Level, strictMode, shouldBlock bool, reason string) *Override {
	now := time.Now().UTC()
	return &Override{
		sequence:    sequence,
		trackID:     trackID,
		level:       level,
		strictMode:  strictMode,
		shouldBlock: shouldBlock,
		reason:      reason,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (o *Override) ID() string                { return o.id }
func (o *Override) Sequence() int             { return o.sequence }
func (o *Override) TrackID() string           { return o.trackID }
func (o *Override) Level() lexicon.Level      { return o.level }
func (o *Override) StrictMode() bool          { return o.strictMode }
func (o *Override) ShouldBlock() bool         { return o.shouldBlock }
func (o *Override) Reason() string            { return o.reason }
func (o *Override) CreatedAt() time.Time      { return o.createdAt }
func (o *Override) UpdatedAt() time.Time      { return o.updatedAt }
func (o *Override) DeletedAt() *time.Time     { return o.deletedAt }
func (o *Override) SetID(id string)           { o.id = id }
func (o *Override) SetSequence(seq int)       { o.sequence = seq }
func (o *Override) SetCreatedAt(t time.Time)  { o.createdAt = t }
func (o *Override) SetUpdatedAt(t time.Time)  { o.updatedAt = t }
func (o *Override) SetDeletedAt(t *time.Time) { o.deletedAt = t }

// SetDecision replaces the block decision and reason and bumps updatedAt.
func (o *Override) SetDecision(shouldBlock bool, reason string) {
	o.shouldBlock = shouldBlock
	o.reason = reason
	o.updatedAt = time.Now().UTC()
}

// Validate checks that the override names a track and a known level.
func (o *Override) Validate() error {
	if strings.TrimSpace(o.trackID) == "" {
		return fmt.Errorf("%w: track id is required", shared.ErrInvalidInput)
	}
	if !o.level.Valid() {
		return fmt.Errorf("%w: %q", shared.ErrUnknownLevel, o.level)
	}
	return nil
}

// MarshalJSON encodes the override with its active fields.
func (o *Override) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          string        `json:"id"`
		Sequence    int           `json:"sequence"`
		TrackID     string        `json:"track_id"`
		Level       lexicon.Level `json:"level"`
		StrictMode  bool          `json:"strict_mode"`
		ShouldBlock bool          `json:"should_block"`
		Reason      string        `json:"reason"`
		CreatedAt   time.Time     `json:"created_at"`
		UpdatedAt   time.Time     `json:"updated_at"`
	}{o.id, o.sequence, o.trackID, o.level, o.strictMode, o.shouldBlock, o.reason, o.createdAt, o.updatedAt})
}
