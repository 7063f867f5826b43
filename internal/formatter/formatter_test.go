package formatter

import (
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/cleanify/internal/analyzer"
	"github.com/desertthunder/cleanify/internal/filter"
	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/models"
	th "github.com/desertthunder/cleanify/internal/testing"
)

func sampleVerdicts() []filter.Verdict {
	return []filter.Verdict{
		{
			ShouldBlock: true,
			Reason:      "Strong profanity, Sexual content",
			Confidence:  0.9,
			HasLyrics:   true,
			Analysis: &analyzer.Result{
				FlaggedWords:   []string{"fuck", "sex"},
				FlaggedPhrases: []string{"strip club"},
				Level:          lexicon.FamilyFriendly,
			},
			Track: models.NewTrack("t1", "Song One", "Artist One"),
		},
		{
			Reason:     filter.ReasonNoLyricsAllowed,
			Confidence: 0.2,
			Track:      models.NewTrack("t2", "Song Two", "Artist Two"),
		},
	}
}

func assertContains(t *testing.T, output string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("output missing %q:\n%s", w, output)
		}
	}
}

func TestRenderTable(t *testing.T) {
	t.Run("no headers renders nothing", func(t *testing.T) {
		if got := renderTable(nil, [][]string{{"a"}}, nil); got != "" {
			t.Errorf("expected empty output, got %q", got)
		}
	})

	t.Run("short rows are padded", func(t *testing.T) {
		out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, []columnAlignment{alignRight})
		assertContains(t, out, "A", "B", "only")
		if lines := strings.Split(out, "\n"); len(lines) != 5 {
			t.Errorf("expected 5 lines, got %d:\n%s", len(lines), out)
		}
	})
}

func TestFormatters(t *testing.T) {
	t.Run("Confidence and Percent", func(t *testing.T) {
		if got := Confidence(0.7); got != "0.70" {
			t.Errorf("Confidence(0.7) = %q", got)
		}
		if got := Percent(200.0 / 3); got != "66.7%" {
			t.Errorf("Percent(66.66) = %q", got)
		}
	})

	t.Run("Decision", func(t *testing.T) {
		assertContains(t, Decision(true), "BLOCKED")
		assertContains(t, Decision(false), "ALLOWED")
	})

	t.Run("VerdictTable", func(t *testing.T) {
		out := VerdictTable(sampleVerdicts())
		assertContains(t, out, "Artist One - Song One", "BLOCKED", "0.90", "Artist Two - Song Two", "ALLOWED", "0.20", "No lyrics available - allowing")
		if strings.Index(out, "Song One") > strings.Index(out, "Song Two") {
			t.Error("expected rows in input order")
		}
	})

	t.Run("VerdictDetail", func(t *testing.T) {
		out := VerdictDetail(sampleVerdicts()[0])
		assertContains(t, out, "Flagged words", "fuck, sex", "strip club")

		out = VerdictDetail(sampleVerdicts()[1])
		if strings.Contains(out, "Flagged words") {
			t.Errorf("expected no analysis rows without lyrics:\n%s", out)
		}
	})

	t.Run("AnalysisDetail", func(t *testing.T) {
		out := AnalysisDetail(analyzer.Result{IsClean: true, Level: lexicon.TeenSafe})
		assertContains(t, out, "teen-safe", "ALLOWED", "0.00", "-")
	})

	t.Run("StatsTable sorts reasons by count", func(t *testing.T) {
		out := StatsTable(filter.Stats{
			Total: 3, Blocked: 2, Allowed: 1, BlockRate: 200.0 / 3, AverageConfidence: 0.6,
			Reasons: map[string]int{"Violent content": 1, "Strong profanity": 2, "Drug references": 1},
		})
		assertContains(t, out, "66.7%", "0.60")
		strong := strings.Index(out, "Strong profanity")
		drug := strings.Index(out, "Drug references")
		violent := strings.Index(out, "Violent content")
		if !(strong < drug && drug < violent) {
			t.Errorf("unexpected reason order:\n%s", out)
		}
	})

	t.Run("StatsTable without reasons", func(t *testing.T) {
		if out := StatsTable(filter.Stats{}); strings.Contains(out, "Reason") {
			t.Errorf("expected no histogram:\n%s", out)
		}
	})

	t.Run("CacheTable", func(t *testing.T) {
		out := CacheTable(filter.CacheStats{Size: 1, Keys: []string{"t1-family-friendly-false"}})
		assertContains(t, out, "1 cached verdicts", "t1-family-friendly-false")
	})

	t.Run("OverridesTable", func(t *testing.T) {
		o := models.NewOverride(3, "t9", lexicon.SqueakyClean, true, false, "approved by parent")
		assertContains(t, OverridesTable([]*models.Override{o}), "t9", "squeaky-clean", "yes", "ALLOWED", "approved by parent")
	})

	t.Run("HistoryTable", func(t *testing.T) {
		r := models.NewVerdictRecord(7, models.VerdictFields{
			Track:       models.NewTrack("t1", "Song One", "Artist One"),
			Level:       lexicon.FamilyFriendly,
			ShouldBlock: true,
			Confidence:  0.75,
			Reason:      "Drug references",
		})
		assertContains(t, HistoryTable([]*models.VerdictRecord{r}), "7", "Artist One - Song One", "BLOCKED", "0.75", "Drug references")
	})

	t.Run("SuiteTable", func(t *testing.T) {
		results := []filter.SuiteResult{
			{Track: filter.SuiteTrack{Artist: "Adele", Title: "Hello", Expected: filter.ExpectSafe}, Status: filter.StatusPass, Duration: 3 * time.Millisecond},
			{Track: filter.SuiteTrack{Artist: "Cardi B", Title: "WAP", Expected: filter.ExpectBlocked}, Status: filter.StatusFail},
		}
		assertContains(t, SuiteTable("mixed", results), "Suite: mixed", "Adele - Hello", "PASS", "FAIL", "3ms", "1/2 passed")
	})

	t.Run("LevelsTable", func(t *testing.T) {
		assertContains(t, LevelsTable(), "squeaky-clean", "family-friendly", "teen-safe", "high", "medium", "low")
	})

	t.Run("SettingsTable", func(t *testing.T) {
		out := SettingsTable(filter.DefaultSettings(lexicon.SqueakyClean))
		assertContains(t, out, "squeaky-clean", "strict_mode", "true", "0.50")
	})
}

func TestExporters(t *testing.T) {
	t.Run("ToJSON", func(t *testing.T) {
		data, err := ToJSON(sampleVerdicts()[0], false)
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded["should_block"] != true || decoded["confidence"] != 0.9 {
			t.Errorf("unexpected JSON %s", data)
		}
	})

	t.Run("ToJSON unsupported value", func(t *testing.T) {
		if _, err := ToJSON(make(chan int), true); err == nil {
			t.Error("expected error for channel")
		}
	})

	t.Run("VerdictsToCSV", func(t *testing.T) {
		data, err := VerdictsToCSV(sampleVerdicts())
		if err != nil {
			t.Fatalf("VerdictsToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("invalid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header and 2 rows, got %d", len(records))
		}
		if records[0][0] != "Track ID" {
			t.Errorf("unexpected header %v", records[0])
		}

		first := records[1]
		if first[0] != "t1" || first[3] != "true" || first[4] != "0.90" || first[6] != "Strong profanity, Sexual content" {
			t.Errorf("unexpected first row %v", first)
		}
		if first[7] != "fuck;sex" || first[8] != "strip club" {
			t.Errorf("unexpected flagged columns %v", first[7:])
		}
		if second := records[2]; second[7] != "" || second[5] != "false" {
			t.Errorf("unexpected second row %v", second)
		}
	})

	t.Run("WriteVerdictsCSV", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")

		written, err := WriteVerdictsCSV(sampleVerdicts(), path)
		if err != nil {
			t.Fatalf("WriteVerdictsCSV failed: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}

		th.AssertFileExists(t, path)
		assertContains(t, th.MustReadFile(t, path), "Song One", "Song Two")
	})

	t.Run("WriteVerdictsCSV bad path", func(t *testing.T) {
		if _, err := WriteVerdictsCSV(nil, filepath.Join(t.TempDir(), "missing", "out.csv")); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
