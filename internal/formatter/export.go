package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/cleanify/internal/filter"
	"github.com/desertthunder/cleanify/internal/shared"
)

// DefaultCSVFile is used by [WriteVerdictsCSV] when no path is given.
const DefaultCSVFile = "verdicts.csv"

var csvHeaders = []string{
	"Track ID", "Title", "Artist", "Blocked", "Confidence", "Has Lyrics", "Reason", "Flagged Words", "Flagged Phrases",
}

// ToJSON marshals any verdict-shaped value for machine consumption.
func ToJSON(v any, pretty bool) ([]byte, error) {
	data, err := shared.MarshalJSON(v, pretty)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// VerdictsToCSV converts verdicts to CSV, one row per track, flagged terms joined with ";".
func VerdictsToCSV(verdicts []filter.Verdict) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, v := range verdicts {
		var words, phrases string
		if v.Analysis != nil {
			words = strings.Join(v.Analysis.FlaggedWords, ";")
			phrases = strings.Join(v.Analysis.FlaggedPhrases, ";")
		}
		record := []string{
			v.Track.ID,
			v.Track.Name,
			v.Track.Artist,
			strconv.FormatBool(v.ShouldBlock),
			Confidence(v.Confidence),
			strconv.FormatBool(v.HasLyrics),
			v.Reason,
			words,
			phrases,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteVerdictsCSV writes verdicts to path, defaulting to [DefaultCSVFile], and returns the path written.
func WriteVerdictsCSV(verdicts []filter.Verdict, path string) (string, error) {
	if path == "" {
		path = DefaultCSVFile
	}

	data, err := VerdictsToCSV(verdicts)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}
