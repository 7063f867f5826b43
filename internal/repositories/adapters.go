package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/cleanify/internal/filter"
	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/models"
)

// VerdictRecorder implements [filter.Recorder] using [VerdictRepository].
type VerdictRecorder struct {
	repo *VerdictRepository
}

// NewVerdictRecorder creates a new [VerdictRecorder] with the given repository
func NewVerdictRecorder(repo *VerdictRepository) *VerdictRecorder {
	return &VerdictRecorder{repo: repo}
}

// Record appends v to the history. Overrides are not recorded.
func (a *VerdictRecorder) Record(ctx context.Context, v filter.Verdict, s filter.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.IsOverride() {
		return nil
	}

	f := models.VerdictFields{
		Track:       v.Track,
		Level:       s.Level,
		StrictMode:  s.StrictMode,
		ShouldBlock: v.ShouldBlock,
		HasLyrics:   v.HasLyrics,
		Confidence:  v.Confidence,
		Reason:      v.Reason,
	}
	if v.Analysis != nil {
		f.FlaggedWords = v.Analysis.FlaggedWords
		f.FlaggedPhrases = v.Analysis.FlaggedPhrases
	}

	if err := a.repo.Create(models.NewVerdictRecord(0, f)); err != nil {
		return fmt.Errorf("failed to record verdict: %w", err)
	}
	return nil
}

// OverrideStore persists manual overrides and restores them into a [filter.Engine].
type OverrideStore struct {
	repo *OverrideRepository
}

// NewOverrideStore creates a new [OverrideStore] with the given repository
func NewOverrideStore(repo *OverrideRepository) *OverrideStore {
	return &OverrideStore{repo: repo}
}

// Save upserts the override for trackID under the level and strict mode of s.
func (a *OverrideStore) Save(trackID string, shouldBlock bool, reason string, s filter.Settings) (*models.Override, error) {
	o := models.NewOverride(0, strings.TrimSpace(trackID), s.Level, s.StrictMode, shouldBlock, reason)
	saved, err := a.repo.Upsert(o)
	if err != nil {
		return nil, fmt.Errorf("failed to save override: %w", err)
	}
	return saved, nil
}

// Restore replays every active override into e and returns how many were applied.
//
// Each override is keyed with the default settings of its level and its own strict mode.
func (a *OverrideStore) Restore(e *filter.Engine) (int, error) {
	overrides, err := a.repo.List(nil)
	if err != nil {
		return 0, fmt.Errorf("failed to load overrides: %w", err)
	}

	for _, o := range overrides {
		e.AddManualOverride(o.TrackID(), o.ShouldBlock(), o.Reason(), SettingsFor(o.Level(), o.StrictMode()))
	}
	return len(overrides), nil
}

// SettingsFor returns the default settings for level with strict mode forced to strictMode.
func SettingsFor(level lexicon.Level, strictMode bool) filter.Settings {
	s := filter.DefaultSettings(level)
	s.StrictMode = strictMode
	return s
}
