package lexicon

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/cleanify/internal/shared"
)

// Level names a policy bundle.
type Level string

const (
	SqueakyClean   Level = "squeaky-clean"
	FamilyFriendly Level = "family-friendly"
	TeenSafe       Level = "teen-safe"
)

// Strictness labels how aggressively a bundle is meant to filter.
type Strictness string

const (
	StrictnessHigh   Strictness = "high"
	StrictnessMedium Strictness = "medium"
	StrictnessLow    Strictness = "low"
)

// Bundle is the curated lexicon for one [Level].
type Bundle struct {
	Name        string
	Description string
	Words       []string
	Phrases     []string
	Strictness  Strictness
}

// Category is the severity bucket of a lexicon entry.
type Category string

const (
	CategoryHeavy   Category = "heavy-profanity"
	CategoryMild    Category = "mild-profanity"
	CategorySexual  Category = "sexual"
	CategoryViolent Category = "violent"
	CategoryDrug    Category = "drug"
	CategoryOther   Category = "other"
)

// Entry is a term or phrase tagged with its category.
type Entry struct {
	Term             string
	Category         Category
	ContextSensitive bool
	Phrase           bool
}

var bundles = map[Level]Bundle{
	SqueakyClean: {
		Name:        "Squeaky Clean",
		Description: "No questionable content whatsoever - perfect for young children",
		Words:       concat(profanity, sexual, violent, drug),
		Phrases:     phrases,
		Strictness:  StrictnessHigh,
	},
	FamilyFriendly: {
		Name:        "Family Friendly",
		Description: "Mild language okay, no explicit content - good for family listening",
		Words:       concat(profanity, sexual, violent, drug),
		Phrases:     phrases,
		Strictness:  StrictnessMedium,
	},
	TeenSafe: {
		Name:        "Teen Safe",
		Description: "Some mature themes okay, heavy profanity and explicit content filtered",
		Words:       concat(keep(profanity, teenSafeProfanity), sexual, drug),
		Phrases: filter(phrases, func(p string) bool {
			return strings.Contains(p, "drug") || strings.Contains(p, "sex")
		}),
		Strictness: StrictnessLow,
	},
}

// Levels returns every level from strictest to most lenient.
func Levels() []Level {
	return []Level{SqueakyClean, FamilyFriendly, TeenSafe}
}

// ParseLevel converts s into a [Level], returning [shared.ErrUnknownLevel] for anything else.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := bundles[l]; !ok {
		return "", fmt.Errorf("%w: %q", shared.ErrUnknownLevel, s)
	}
	return l, nil
}

// Valid reports whether l names a known bundle.
func (l Level) Valid() bool {
	_, ok := bundles[l]
	return ok
}

func (l Level) String() string { return string(l) }

// Describe returns a copy of the bundle for l.
func Describe(l Level) (Bundle, error) {
	b, ok := bundles[l]
	if !ok {
		return Bundle{}, fmt.Errorf("%w: %q", shared.ErrUnknownLevel, l)
	}
	b.Words = slices.Clone(b.Words)
	b.Phrases = slices.Clone(b.Phrases)
	return b, nil
}

// Words returns the word list for l.
func Words(l Level) ([]string, error) {
	b, err := Describe(l)
	return b.Words, err
}

// Phrases returns the phrase list for l.
func Phrases(l Level) ([]string, error) {
	b, err := Describe(l)
	return b.Phrases, err
}

// IsContextSensitive reports whether word is commonly used innocuously.
func IsContextSensitive(word string) bool {
	return slices.Contains(contextSensitive, strings.ToLower(word))
}

// IsHeavy reports whether term is in the fixed heavy-profanity scoring set.
func IsHeavy(term string) bool { return slices.Contains(heavyTerms, term) }

// IsMild reports whether term is in the fixed mild-profanity scoring set.
func IsMild(term string) bool { return slices.Contains(mildTerms, term) }

// ReasonKeyword reports whether term triggers the reason for category c.
//
// Only heavy, sexual, violent and drug categories have reason keywords.
func ReasonKeyword(c Category, term string) bool {
	switch c {
	case CategoryHeavy:
		return slices.Contains(heavyTerms, term)
	case CategorySexual:
		return slices.Contains(sexualTerms, term)
	case CategoryViolent:
		return slices.Contains(violentTerms, term)
	case CategoryDrug:
		return slices.Contains(drugTerms, term)
	default:
		return false
	}
}

// CategoryOf returns the severity bucket of a term.
//
// Scoring buckets (heavy, mild) take precedence over thematic tables.
func CategoryOf(term string) Category {
	term = strings.ToLower(term)
	switch {
	case IsHeavy(term):
		return CategoryHeavy
	case IsMild(term):
		return CategoryMild
	case slices.Contains(sexual, term) || slices.Contains(sexualTerms, term):
		return CategorySexual
	case slices.Contains(violent, term) || slices.Contains(violentTerms, term):
		return CategoryViolent
	case slices.Contains(drug, term) || slices.Contains(drugTerms, term):
		return CategoryDrug
	default:
		return CategoryOther
	}
}

// Entries returns the tagged view of the bundle for l: words first, then phrases.
func Entries(l Level) ([]Entry, error) {
	b, err := Describe(l)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(b.Words)+len(b.Phrases))
	for _, w := range b.Words {
		entries = append(entries, Entry{Term: w, Category: CategoryOf(w), ContextSensitive: IsContextSensitive(w)})
	}
	for _, p := range b.Phrases {
		entries = append(entries, Entry{Term: p, Category: CategoryOf(p), Phrase: true})
	}
	return entries, nil
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func keep(list, allowed []string) []string {
	return filter(list, func(s string) bool { return slices.Contains(allowed, s) })
}

func filter(list []string, fn func(string) bool) []string {
	out := []string{}
	for _, s := range list {
		if fn(s) {
			out = append(out, s)
		}
	}
	return out
}
