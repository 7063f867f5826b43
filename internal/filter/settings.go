package filter

import (
	"fmt"

	"github.com/desertthunder/cleanify/internal/analyzer"
	"github.com/desertthunder/cleanify/internal/lexicon"
)

// Settings is the per-call filtering policy.
type Settings struct {
	Level         lexicon.Level `json:"level"`
	StrictMode    bool          `json:"strict_mode"`
	BlockUnknown  bool          `json:"block_unknown"` // block tracks whose lyrics cannot be found
	MinConfidence float64       `json:"min_confidence"`
}

// DefaultSettings returns the recommended settings for level.
//
// Unknown levels get the family-friendly values with the given level kept as is.
func DefaultSettings(level lexicon.Level) Settings {
	s := Settings{Level: level, StrictMode: false, BlockUnknown: true, MinConfidence: 0.7}

	switch level {
	case lexicon.SqueakyClean:
		s.StrictMode = true
		s.MinConfidence = 0.5
	case lexicon.TeenSafe:
		s.BlockUnknown = false
		s.MinConfidence = 0.8
	}
	return s
}

// Options converts s into analyzer options.
func (s Settings) Options() analyzer.Options {
	return analyzer.Options{Level: s.Level, StrictMode: s.StrictMode, MinConfidence: s.MinConfidence}
}

func (s Settings) String() string {
	return fmt.Sprintf("level=%s strict=%t block_unknown=%t min_confidence=%.2f",
		s.Level, s.StrictMode, s.BlockUnknown, s.MinConfidence)
}
