package analyzer

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/shared"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func opts(level lexicon.Level, strict bool, minConfidence float64) Options {
	return Options{Level: level, StrictMode: strict, MinConfidence: minConfidence}
}

func TestNormalize(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "Hello World", want: "hello world"},
		{name: "punctuation becomes space", in: "Sh*t! F**k...", want: "sh t f k"},
		{name: "collapses whitespace", in: "  a\t\tb\n\nc  ", want: "a b c"},
		{name: "keeps underscores and digits", in: "damn_it 99", want: "damn_it 99"},
		{name: "non-ascii letters are stripped", in: "café", want: "caf"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVariations(t *testing.T) {
	t.Run("word ending in e", func(t *testing.T) {
		// Fixed suffix rules, not a stemmer: "er" is appended as-is.
		got := Variations("smoke")
		want := []string{"smoke", "smokes", "smoking", "smoked", "smokeer"}
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("other words", func(t *testing.T) {
		got := Variations("kill")
		want := []string{"kill", "kills", "killing", "killed", "killer"}
		if !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("substring match", func(t *testing.T) {
		if !Matches("hello", "hell") {
			t.Error("expected token containing the word to match")
		}
		if !Matches("strip", "trip") {
			t.Error("expected strip to contain trip")
		}
		if Matches("sun", "gun") {
			t.Error("expected sun not to match gun")
		}
	})
}

func TestAnalyze(t *testing.T) {
	a := New()

	t.Run("no flagged terms at any level", func(t *testing.T) {
		for _, level := range lexicon.Levels() {
			res, err := a.Analyze("have a nice day", opts(level, false, 0.7))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !res.IsClean || res.Confidence != 0 {
				t.Errorf("%s: expected clean with zero confidence, got %+v", level, res)
			}
			if len(res.FlaggedWords) != 0 || len(res.Reasons) != 0 {
				t.Errorf("%s: expected no flags or reasons, got %+v", level, res)
			}
			if res.Level != level {
				t.Errorf("expected level %s, got %s", level, res.Level)
			}
		}
	})

	t.Run("repeated heavy profanity is deduplicated", func(t *testing.T) {
		res, err := a.Analyze("fuck fuck fuck", opts(lexicon.FamilyFriendly, false, 0.7))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !slices.Equal(res.FlaggedWords, []string{"fuck"}) {
			t.Errorf("expected [fuck], got %v", res.FlaggedWords)
		}
		if !approx(res.Confidence, 0.6) {
			t.Errorf("expected confidence 0.6, got %v", res.Confidence)
		}
		if !res.IsClean {
			t.Error("expected 0.6 to be below the 0.7 threshold")
		}
		want := []string{ReasonStrongProfanity, ReasonSexualContent}
		if !slices.Equal(res.Reasons, want) {
			t.Errorf("expected reasons %v, got %v", want, res.Reasons)
		}
	})

	t.Run("confidence equal to threshold is not clean", func(t *testing.T) {
		res, err := a.Analyze("murder cocaine", opts(lexicon.FamilyFriendly, false, 0.7))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Confidence != 0.7 {
			t.Fatalf("expected confidence exactly 0.7, got %v", res.Confidence)
		}
		if res.IsClean {
			t.Error("expected confidence == minConfidence to block")
		}
		want := []string{ReasonViolentContent, ReasonDrugReferences}
		if !slices.Equal(res.Reasons, want) {
			t.Errorf("expected reasons %v, got %v", want, res.Reasons)
		}
	})

	t.Run("mild profanity in strict mode reaches threshold", func(t *testing.T) {
		res, err := a.Analyze("Damn! Ass. Crap? Hell", opts(lexicon.FamilyFriendly, true, 0.7))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !slices.Equal(res.FlaggedWords, []string{"damn", "ass", "crap", "hell"}) {
			t.Errorf("unexpected flagged words %v", res.FlaggedWords)
		}
		if res.Confidence != 0.7 || res.IsClean {
			t.Errorf("expected blocking confidence 0.7, got %+v", res)
		}
		if !slices.Equal(res.Reasons, []string{ReasonInappropriate}) {
			t.Errorf("expected fallback reason, got %v", res.Reasons)
		}
	})

	t.Run("context sensitive words need strict mode", func(t *testing.T) {
		lenient, _ := a.Analyze("What the hell is this", opts(lexicon.FamilyFriendly, false, 0.7))
		if len(lenient.FlaggedWords) != 0 || lenient.Confidence != 0 {
			t.Errorf("expected hell to be skipped, got %+v", lenient)
		}

		strict, _ := a.Analyze("What the hell is this", opts(lexicon.FamilyFriendly, true, 0.7))
		if !slices.Equal(strict.FlaggedWords, []string{"hell"}) {
			t.Errorf("expected hell to be flagged, got %v", strict.FlaggedWords)
		}
		if !approx(strict.Confidence, 0.4) {
			t.Errorf("expected confidence 0.4, got %v", strict.Confidence)
		}
	})

	t.Run("tokens containing a word match it", func(t *testing.T) {
		res, _ := a.Analyze("hello", opts(lexicon.SqueakyClean, true, 0.5))
		if !slices.Equal(res.FlaggedWords, []string{"hell"}) {
			t.Errorf("expected hello to flag hell, got %v", res.FlaggedWords)
		}
	})

	t.Run("phrases", func(t *testing.T) {
		res, _ := a.Analyze("I wanna get high tonight", opts(lexicon.FamilyFriendly, false, 0.7))
		if !slices.Equal(res.FlaggedPhrases, []string{"get high"}) {
			t.Errorf("expected [get high], got %v", res.FlaggedPhrases)
		}
		if len(res.FlaggedWords) != 0 {
			t.Errorf("expected high to be skipped outside strict mode, got %v", res.FlaggedWords)
		}
		if !approx(res.Confidence, 0.25) {
			t.Errorf("expected confidence 0.25, got %v", res.Confidence)
		}
		if !slices.Equal(res.Reasons, []string{ReasonExplicitPhrases}) {
			t.Errorf("expected phrase reason, got %v", res.Reasons)
		}

		teen, _ := a.Analyze("I wanna get high tonight", opts(lexicon.TeenSafe, false, 0.8))
		if len(teen.FlaggedPhrases) != 0 || teen.Confidence != 0 {
			t.Errorf("expected teen-safe to ignore the phrase, got %+v", teen)
		}
	})

	t.Run("score is capped", func(t *testing.T) {
		res, _ := a.Analyze("one night stand at the strip club", opts(lexicon.FamilyFriendly, false, 0.7))
		if res.Confidence != 1.0 {
			t.Errorf("expected capped confidence 1.0, got %v", res.Confidence)
		}
		if !slices.Equal(res.FlaggedPhrases, []string{"one night stand", "strip club"}) {
			t.Errorf("unexpected phrases %v", res.FlaggedPhrases)
		}
		if !slices.Equal(res.FlaggedWords, []string{"trip", "club"}) {
			t.Errorf("unexpected words %v", res.FlaggedWords)
		}
	})

	t.Run("empty lyrics", func(t *testing.T) {
		res, err := a.Analyze("", DefaultOptions())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !res.IsClean || res.Confidence != 0 {
			t.Errorf("expected clean zero confidence, got %+v", res)
		}

		res, _ = a.Analyze("", opts(lexicon.FamilyFriendly, false, 0))
		if res.IsClean {
			t.Error("expected zero threshold to mark everything unclean")
		}
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := a.Analyze("anything", opts(lexicon.Level("explicit"), false, 0.7))
		if !errors.Is(err, shared.ErrUnknownLevel) {
			t.Errorf("expected ErrUnknownLevel, got %v", err)
		}
		if !errors.Is(err, shared.ErrAnalysisFailed) {
			t.Errorf("expected ErrAnalysisFailed, got %v", err)
		}
	})
}

func TestConfidenceMonotonic(t *testing.T) {
	a := New()
	base := "the sun is shining over the quiet little town today and the birds are singing songs"
	heavy := []string{"shit", "bitch", "fuck", "faggot", "nigger"}

	prev := -1.0
	for n := 0; n <= len(heavy); n++ {
		lyrics := strings.TrimSpace(base + " " + strings.Join(heavy[:n], " "))
		res, err := a.Analyze(lyrics, DefaultOptions())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Confidence < prev {
			t.Errorf("confidence decreased from %v to %v after adding %q", prev, res.Confidence, heavy[n-1])
		}
		prev = res.Confidence
	}
	if prev != 1.0 {
		t.Errorf("expected saturation at 1.0, got %v", prev)
	}
}

func TestIsContentClean(t *testing.T) {
	a := New()

	if !a.IsContentClean("have a nice day", lexicon.FamilyFriendly) {
		t.Error("expected clean lyrics to pass")
	}
	if a.IsContentClean("Fuck this shit, bitch", lexicon.FamilyFriendly) {
		t.Error("expected explicit lyrics to fail")
	}
	if a.IsContentClean("have a nice day", lexicon.Level("unknown")) {
		t.Error("expected an unknown level to fail closed")
	}
}
