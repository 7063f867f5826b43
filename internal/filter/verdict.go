package filter

import (
	"slices"
	"strings"

	"github.com/desertthunder/cleanify/internal/analyzer"
	"github.com/desertthunder/cleanify/internal/models"
	"github.com/desertthunder/cleanify/internal/shared"
)

const (
	ReasonNoLyricsBlocked = "No lyrics available - blocking for safety"
	ReasonNoLyricsAllowed = "No lyrics available - allowing"
	ReasonFailSafe        = "Error analyzing content - blocking for safety"
	ReasonClean           = "Content is family-safe"
	ReasonExplicit        = "Contains explicit content"
	OverridePrefix        = "Manual override: "
)

const (
	noLyricsBlockedConfidence = 0.8
	noLyricsAllowedConfidence = 0.2
	failSafeConfidence        = 0.9
	overrideConfidence        = 1.0
)

// Verdict is the engine's decision for one track.
type Verdict struct {
	ShouldBlock bool             `json:"should_block"`
	Reason      string           `json:"reason"`
	Confidence  float64          `json:"confidence"`
	HasLyrics   bool             `json:"has_lyrics"`
	Analysis    *analyzer.Result `json:"analysis,omitempty"`
	Track       models.Track     `json:"track"`
}

// clone returns a copy of v that shares no analysis data with it.
func (v Verdict) clone() Verdict {
	if v.Analysis == nil {
		return v
	}
	res := *v.Analysis
	res.FlaggedWords = slices.Clone(res.FlaggedWords)
	res.FlaggedPhrases = slices.Clone(res.FlaggedPhrases)
	res.Reasons = slices.Clone(res.Reasons)
	v.Analysis = &res
	return v
}

// IsOverride reports whether v was produced by [Engine.AddManualOverride].
func (v Verdict) IsOverride() bool {
	return v.Track.Name == models.ManualOverride && v.Track.Artist == models.ManualOverride
}

func noLyricsVerdict(track models.Track, blockUnknown bool) Verdict {
	v := Verdict{ShouldBlock: blockUnknown, Track: track}
	if blockUnknown {
		v.Reason = ReasonNoLyricsBlocked
		v.Confidence = noLyricsBlockedConfidence
	} else {
		v.Reason = ReasonNoLyricsAllowed
		v.Confidence = noLyricsAllowedConfidence
	}
	return v
}

func analyzedVerdict(track models.Track, res analyzer.Result) Verdict {
	v := Verdict{
		ShouldBlock: !res.IsClean,
		Reason:      ReasonClean,
		Confidence:  res.Confidence,
		HasLyrics:   true,
		Analysis:    &res,
		Track:       track,
	}
	if v.ShouldBlock {
		v.Reason = joinReasons(res.Reasons)
	}
	return v
}

func failSafeVerdict(track models.Track) Verdict {
	return Verdict{ShouldBlock: true, Reason: ReasonFailSafe, Confidence: failSafeConfidence, Track: track}
}

func overrideVerdict(trackID string, shouldBlock bool, reason string) Verdict {
	return Verdict{
		ShouldBlock: shouldBlock,
		Reason:      OverridePrefix + reason,
		Confidence:  overrideConfidence,
		HasLyrics:   true,
		Track:       models.Track{ID: trackID, Name: models.ManualOverride, Artist: models.ManualOverride},
	}
}

func joinReasons(reasons []string) string {
	if len(reasons) == 0 {
		return ReasonExplicit
	}
	return strings.Join(reasons, ", ")
}

// Stats aggregates verdicts for a set of tracks.
type Stats struct {
	Total             int            `json:"total"`
	Blocked           int            `json:"blocked"`
	Allowed           int            `json:"allowed"`
	NoLyrics          int            `json:"no_lyrics"`
	BlockRate         float64        `json:"block_rate"` // percent
	AverageConfidence float64        `json:"average_confidence"`
	Reasons           map[string]int `json:"reasons"` // blocked tracks only
}

// Summarize computes [Stats] over verdicts. Empty input yields zero rates.
func Summarize(verdicts []Verdict) Stats {
	stats := Stats{Total: len(verdicts), Reasons: map[string]int{}}

	sum := 0.0
	for _, v := range verdicts {
		sum += v.Confidence
		if !v.HasLyrics {
			stats.NoLyrics++
		}
		if !v.ShouldBlock {
			stats.Allowed++
			continue
		}

		stats.Blocked++
		if v.Analysis != nil && v.Analysis.Reasons != nil {
			for _, r := range v.Analysis.Reasons {
				stats.Reasons[r]++
			}
		} else {
			stats.Reasons[v.Reason]++
		}
	}

	stats.BlockRate = shared.PercentOf(stats.Blocked, stats.Total)
	if stats.Total > 0 {
		stats.AverageConfidence = sum / float64(stats.Total)
	}
	return stats
}

// CacheStats describes the verdict memo.
type CacheStats struct {
	Size int      `json:"size"`
	Keys []string `json:"keys"`
}
