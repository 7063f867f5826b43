package analyzer

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/shared"
)

const (
	heavyWeight  = 0.30
	mildWeight   = 0.10
	otherWeight  = 0.20
	phraseWeight = 0.25

	highFrequency      = 0.10
	highFrequencyBonus = 0.30
	lowFrequency       = 0.05
	lowFrequencyBonus  = 0.15

	maxConfidence = 1.0
)

// Reasons, in the order they are reported.
const (
	ReasonStrongProfanity = "Contains strong profanity"
	ReasonSexualContent   = "Contains sexual content"
	ReasonViolentContent  = "Contains violent content"
	ReasonDrugReferences  = "Contains drug references"
	ReasonExplicitPhrases = "Contains explicit phrases"
	ReasonInappropriate   = "Contains inappropriate content"
)

const (
	DefaultLevel         = lexicon.FamilyFriendly
	DefaultMinConfidence = 0.7
)

var (
	punctuation = regexp.MustCompile(`[^\w\s]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Options controls a single analysis.
type Options struct {
	Level lexicon.Level
	// StrictMode flags context-sensitive words that are otherwise skipped.
	StrictMode bool
	// MinConfidence is the score at or above which content is not clean.
	MinConfidence float64
}

// DefaultOptions returns family-friendly, non-strict analysis with a 0.7 threshold.
func DefaultOptions() Options {
	return Options{Level: DefaultLevel, StrictMode: false, MinConfidence: DefaultMinConfidence}
}

// Result is the outcome of analyzing one lyrics text.
type Result struct {
	IsClean        bool          `json:"is_clean"`
	Confidence     float64       `json:"confidence"`
	FlaggedWords   []string      `json:"flagged_words"`
	FlaggedPhrases []string      `json:"flagged_phrases"`
	Reasons        []string      `json:"reasons"`
	Level          lexicon.Level `json:"level"`
}

// Flagged reports whether any word or phrase matched.
func (r Result) Flagged() bool {
	return len(r.FlaggedWords) > 0 || len(r.FlaggedPhrases) > 0
}

// Analyzer is stateless; the zero value is ready to use.
type Analyzer struct{}

// New returns an [Analyzer].
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze scores lyrics under opts.
//
// An unknown level yields an error wrapping [shared.ErrUnknownLevel].
func (a *Analyzer) Analyze(lyrics string, opts Options) (Result, error) {
	words, err := lexicon.Words(opts.Level)
	if err != nil {
		return Result{Level: opts.Level}, fmt.Errorf("%w: %w", shared.ErrAnalysisFailed, err)
	}
	phrases, err := lexicon.Phrases(opts.Level)
	if err != nil {
		return Result{Level: opts.Level}, fmt.Errorf("%w: %w", shared.ErrAnalysisFailed, err)
	}

	text := Normalize(lyrics)
	tokens := strings.Split(text, " ")

	flaggedWords := findWords(tokens, words, opts.StrictMode)
	flaggedPhrases := findPhrases(text, phrases)
	confidence := score(flaggedWords, flaggedPhrases, len(tokens))

	return Result{
		IsClean:        confidence < opts.MinConfidence,
		Confidence:     confidence,
		FlaggedWords:   flaggedWords,
		FlaggedPhrases: flaggedPhrases,
		Reasons:        reasons(flaggedWords, flaggedPhrases),
		Level:          opts.Level,
	}, nil
}

// IsContentClean analyzes lyrics at level with the default strictness and threshold.
// Analysis failures are reported as not clean.
func (a *Analyzer) IsContentClean(lyrics string, level lexicon.Level) bool {
	opts := DefaultOptions()
	opts.Level = level

	res, err := a.Analyze(lyrics, opts)
	if err != nil {
		return false
	}
	return res.IsClean
}

// Normalize lowercases s, turns punctuation into spaces and collapses whitespace.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = punctuation.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Variations returns the fixed morphological forms of word, starting with word itself.
func Variations(word string) []string {
	v := []string{word, word + "s"}
	if stem, ok := strings.CutSuffix(word, "e"); ok {
		v = append(v, stem+"ing", word+"d")
	} else {
		v = append(v, word+"ing", word+"ed")
	}
	return append(v, word+"er")
}

// Matches reports whether token equals or contains any variation of word.
func Matches(token, word string) bool {
	if token == word {
		return true
	}
	for _, v := range Variations(word) {
		if token == v || strings.Contains(token, v) {
			return true
		}
	}
	return false
}

// findWords returns lexicon words matched by tokens, deduplicated in first-match order.
func findWords(tokens, words []string, strict bool) []string {
	flagged := []string{}
	for _, token := range tokens {
		for _, word := range words {
			if !Matches(token, word) {
				continue
			}
			if !strict && lexicon.IsContextSensitive(word) {
				continue
			}
			if !slices.Contains(flagged, word) {
				flagged = append(flagged, word)
			}
		}
	}
	return flagged
}

func findPhrases(text string, phrases []string) []string {
	flagged := []string{}
	for _, p := range phrases {
		if strings.Contains(text, strings.ToLower(p)) {
			flagged = append(flagged, p)
		}
	}
	return flagged
}

func score(words, phrases []string, tokenCount int) float64 {
	total := 0.0
	for _, w := range words {
		switch {
		case lexicon.IsHeavy(w):
			total += heavyWeight
		case lexicon.IsMild(w):
			total += mildWeight
		default:
			total += otherWeight
		}
	}

	total += float64(len(phrases)) * phraseWeight

	frequency := float64(len(words)) / float64(max(tokenCount, 1))
	switch {
	case frequency > highFrequency:
		total += highFrequencyBonus
	case frequency > lowFrequency:
		total += lowFrequencyBonus
	}

	return min(total, maxConfidence)
}

func reasons(words, phrases []string) []string {
	out := []string{}

	if len(words) > 0 {
		for _, r := range []struct {
			category lexicon.Category
			reason   string
		}{
			{lexicon.CategoryHeavy, ReasonStrongProfanity},
			{lexicon.CategorySexual, ReasonSexualContent},
			{lexicon.CategoryViolent, ReasonViolentContent},
			{lexicon.CategoryDrug, ReasonDrugReferences},
		} {
			if slices.ContainsFunc(words, func(w string) bool { return lexicon.ReasonKeyword(r.category, w) }) {
				out = append(out, r.reason)
			}
		}
	}

	if len(phrases) > 0 {
		out = append(out, ReasonExplicitPhrases)
	}

	if len(out) == 0 && (len(words) > 0 || len(phrases) > 0) {
		out = append(out, ReasonInappropriate)
	}
	return out
}
