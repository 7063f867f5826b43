package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/shared"
)

// VerdictRecord is an append-only history entry for a computed verdict.
type VerdictRecord struct {
	id             string
	sequence       int
	track          Track
	level          lexicon.Level
	strictMode     bool
	shouldBlock    bool
	hasLyrics      bool
	confidence     float64
	reason         string
	flaggedWords   []string
	flaggedPhrases []string
	createdAt      time.Time
}

// VerdictFields carries the values of a new [VerdictRecord].
type VerdictFields struct {
	Track          Track
	Level          lexicon.Level
	StrictMode     bool
	ShouldBlock    bool
	HasLyrics      bool
	Confidence     float64
	Reason         string
	FlaggedWords   []string
	FlaggedPhrases []string
}

// NewVerdictRecord creates a new [VerdictRecord] stamped with the current time.
func NewVerdictRecord(sequence int, f VerdictFields) *VerdictRecord {
	return &VerdictRecord{
		sequence:       sequence,
		track:          f.Track,
		level:          f.Level,
		strictMode:     f.StrictMode,
		shouldBlock:    f.ShouldBlock,
		hasLyrics:      f.HasLyrics,
		confidence:     f.Confidence,
		reason:         f.Reason,
		flaggedWords:   f.FlaggedWords,
		flaggedPhrases: f.FlaggedPhrases,
		createdAt:      time.Now().UTC(),
	}
}

func (v *VerdictRecord) ID() string               { return v.id }
func (v *VerdictRecord) Sequence() int            { return v.sequence }
func (v *VerdictRecord) Track() Track             { return v.track }
func (v *VerdictRecord) Level() lexicon.Level     { return v.level }
func (v *VerdictRecord) StrictMode() bool         { return v.strictMode }
func (v *VerdictRecord) ShouldBlock() bool        { return v.shouldBlock }
func (v *VerdictRecord) HasLyrics() bool          { return v.hasLyrics }
func (v *VerdictRecord) Confidence() float64      { return v.confidence }
func (v *VerdictRecord) Reason() string           { return v.reason }
func (v *VerdictRecord) FlaggedWords() []string   { return v.flaggedWords }
func (v *VerdictRecord) FlaggedPhrases() []string { return v.flaggedPhrases }
func (v *VerdictRecord) CreatedAt() time.Time     { return v.createdAt }

// UpdatedAt equals CreatedAt; history entries are never modified.
func (v *VerdictRecord) UpdatedAt() time.Time { return v.createdAt }

func (v *VerdictRecord) SetID(id string)          { v.id = id }
func (v *VerdictRecord) SetCreatedAt(t time.Time) { v.createdAt = t }

// Validate checks that the record names a track, a known level and a confidence in [0, 1].
func (v *VerdictRecord) Validate() error {
	if strings.TrimSpace(v.track.ID) == "" {
		return fmt.Errorf("%w: track id is required", shared.ErrInvalidInput)
	}
	if !v.level.Valid() {
		return fmt.Errorf("%w: %q", shared.ErrUnknownLevel, v.level)
	}
	if v.confidence < 0 || v.confidence > 1 {
		return fmt.Errorf("%w: confidence %v out of range", shared.ErrInvalidInput, v.confidence)
	}
	return nil
}

func (v *VerdictRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID             string        `json:"id"`
		Sequence       int           `json:"sequence"`
		Track          Track         `json:"track"`
		Level          lexicon.Level `json:"level"`
		StrictMode     bool          `json:"strict_mode"`
		ShouldBlock    bool          `json:"should_block"`
		HasLyrics      bool          `json:"has_lyrics"`
		Confidence     float64       `json:"confidence"`
		Reason         string        `json:"reason"`
		FlaggedWords   []string      `json:"flagged_words"`
		FlaggedPhrases []string      `json:"flagged_phrases"`
		CreatedAt      time.Time     `json:"created_at"`
	}{
		v.id, v.sequence, v.track, v.level, v.strictMode, v.shouldBlock, v.hasLyrics,
		v.confidence, v.reason, v.flaggedWords, v.flaggedPhrases, v.createdAt,
	})
}
