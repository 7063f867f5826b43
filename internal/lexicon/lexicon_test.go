package lexicon

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/desertthunder/cleanify/internal/shared"
)

func TestBundles(t *testing.T) {
	t.Run("teen-safe phrases mention drugs or sex", func(t *testing.T) {
		phrases, err := Phrases(TeenSafe)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, p := range phrases {
			if !strings.Contains(p, "drug") && !strings.Contains(p, "sex") {
				t.Errorf("teen-safe phrase %q mentions neither drugs nor sex", p)
			}
		}
	})

	t.Run("teen-safe phrases are a subset of squeaky-clean phrases", func(t *testing.T) {
		teen, _ := Phrases(TeenSafe)
		all, _ := Phrases(SqueakyClean)
		for _, p := range teen {
			if !slices.Contains(all, p) {
				t.Errorf("phrase %q missing from squeaky-clean", p)
			}
		}
		if len(teen) >= len(all) {
			t.Errorf("expected teen-safe phrases to be narrower, got %d vs %d", len(teen), len(all))
		}
	})

	t.Run("family-friendly has squeaky-clean word coverage", func(t *testing.T) {
		family, _ := Words(FamilyFriendly)
		squeaky, _ := Words(SqueakyClean)
		if !slices.Equal(family, squeaky) {
			t.Error("expected identical word lists")
		}
	})

	t.Run("teen-safe word list", func(t *testing.T) {
		words, _ := Words(TeenSafe)

		for _, w := range []string{"fuck", "fucking", "shit", "bitch", "motherfucker", "bedroom", "smoke", "pills"} {
			if !slices.Contains(words, w) {
				t.Errorf("expected teen-safe words to contain %q", w)
			}
		}
		for _, w := range []string{"damn", "hell", "kill", "murder", "gang", "weed", "nigger"} {
			if slices.Contains(words, w) {
				t.Errorf("expected teen-safe words to exclude %q", w)
			}
		}

		squeaky, _ := Words(SqueakyClean)
		for _, w := range words {
			if !slices.Contains(squeaky, w) {
				t.Errorf("teen-safe word %q missing from squeaky-clean", w)
			}
		}
	})

	t.Run("strictness per level", func(t *testing.T) {
		tc := []struct {
			level Level
			want  Strictness
		}{
			{SqueakyClean, StrictnessHigh},
			{FamilyFriendly, StrictnessMedium},
			{TeenSafe, StrictnessLow},
		}
		for _, tt := range tc {
			b, err := Describe(tt.level)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if b.Strictness != tt.want {
				t.Errorf("%s: expected strictness %s, got %s", tt.level, tt.want, b.Strictness)
			}
			if b.Name == "" || b.Description == "" {
				t.Errorf("%s: expected name and description", tt.level)
			}
		}
	})

	t.Run("accessors return copies", func(t *testing.T) {
		words, _ := Words(SqueakyClean)
		words[0] = "mutated"

		again, _ := Words(SqueakyClean)
		if again[0] == "mutated" {
			t.Error("expected bundle to be unaffected by caller mutation")
		}
	})

	t.Run("unknown level", func(t *testing.T) {
		if _, err := Words(Level("pg-13")); !errors.Is(err, shared.ErrUnknownLevel) {
			t.Errorf("expected ErrUnknownLevel, got %v", err)
		}
		if Level("pg-13").Valid() {
			t.Error("expected unknown level to be invalid")
		}
	})
}

func TestParseLevel(t *testing.T) {
	tc := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "squeaky-clean", want: SqueakyClean},
		{in: " Family-Friendly ", want: FamilyFriendly},
		{in: "TEEN-SAFE", want: TeenSafe},
		{in: "explicit", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if !errors.Is(err, shared.ErrUnknownLevel) {
					t.Errorf("expected ErrUnknownLevel, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsContextSensitive(t *testing.T) {
	for _, w := range []string{"hell", "HELL", "kill", "high", "party"} {
		if !IsContextSensitive(w) {
			t.Errorf("expected %q to be context sensitive", w)
		}
	}
	for _, w := range []string{"fuck", "murder", "cocaine", ""} {
		if IsContextSensitive(w) {
			t.Errorf("expected %q not to be context sensitive", w)
		}
	}
}

func TestCategories(t *testing.T) {
	tc := []struct {
		term string
		want Category
	}{
		{"fuck", CategoryHeavy},
		{"damn", CategoryMild},
		{"bedroom", CategorySexual},
		{"sex", CategorySexual},
		{"murder", CategoryViolent},
		{"gang", CategoryViolent},
		{"cocaine", CategoryDrug},
		{"molly", CategoryDrug},
		{"pimp", CategoryOther},
	}
	for _, tt := range tc {
		if got := CategoryOf(tt.term); got != tt.want {
			t.Errorf("CategoryOf(%q) = %s, want %s", tt.term, got, tt.want)
		}
	}

	if !ReasonKeyword(CategorySexual, "fuck") || !ReasonKeyword(CategoryHeavy, "fuck") {
		t.Error("expected fuck to trigger both heavy and sexual reasons")
	}
	if ReasonKeyword(CategoryMild, "damn") {
		t.Error("mild category has no reason keywords")
	}

	entries, err := Entries(FamilyFriendly)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var hell *Entry
	for i := range entries {
		if entries[i].Term == "hell" {
			hell = &entries[i]
		}
	}
	if hell == nil || !hell.ContextSensitive || hell.Category != CategoryMild || hell.Phrase {
		t.Errorf("unexpected entry for hell: %+v", hell)
	}
	if last := entries[len(entries)-1]; !last.Phrase {
		t.Errorf("expected phrases after words, got %+v", last)
	}
}
