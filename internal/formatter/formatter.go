// package formatter renders verdicts, analyses and statistics as terminal tables and exports them to CSV and JSON
package formatter

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/cleanify/internal/analyzer"
	"github.com/desertthunder/cleanify/internal/filter"
	"github.com/desertthunder/cleanify/internal/lexicon"
	"github.com/desertthunder/cleanify/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

const timeLayout = "2006-01-02 15:04:05"

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// Confidence formats a confidence score with two decimals.
func Confidence(c float64) string {
	return strconv.FormatFloat(c, 'f', 2, 64)
}

// Percent formats a percentage with one decimal.
func Percent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// VerdictTable renders one row per verdict in input order.
func VerdictTable(verdicts []filter.Verdict) string {
	rows := make([][]string, 0, len(verdicts))
	for i, v := range verdicts {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			v.Track.Label(),
			Decision(v.ShouldBlock),
			Confidence(v.Confidence),
			yesNo(v.HasLyrics),
			v.Reason,
		})
	}
	return renderTable(
		[]string{"#", "Track", "Decision", "Confidence", "Lyrics", "Reason"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	)
}

// VerdictDetail renders a single verdict with its analysis, if any.
func VerdictDetail(v filter.Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", Title(v.Track.Label()))

	rows := [][]string{
		{"Decision", Decision(v.ShouldBlock)},
		{"Reason", v.Reason},
		{"Confidence", Confidence(v.Confidence)},
		{"Lyrics found", yesNo(v.HasLyrics)},
	}
	if v.IsOverride() {
		rows = append(rows, []string{"Source", "manual override"})
	}
	if v.Analysis != nil {
		rows = append(rows,
			[]string{"Flagged words", listOrDash(v.Analysis.FlaggedWords)},
			[]string{"Flagged phrases", listOrDash(v.Analysis.FlaggedPhrases)},
		)
	}
	b.WriteString(renderTable([]string{"Field", "Value"}, rows, nil))
	return b.String()
}

// AnalysisDetail renders an ad-hoc analysis of raw lyrics.
func AnalysisDetail(res analyzer.Result) string {
	rows := [][]string{
		{"Level", res.Level.String()},
		{"Decision", Decision(!res.IsClean)},
		{"Confidence", Confidence(res.Confidence)},
		{"Flagged words", listOrDash(res.FlaggedWords)},
		{"Flagged phrases", listOrDash(res.FlaggedPhrases)},
		{"Reasons", listOrDash(res.Reasons)},
	}
	return renderTable([]string{"Field", "Value"}, rows, nil)
}

// StatsTable renders aggregate statistics followed by the reasons histogram, most frequent first.
func StatsTable(s filter.Stats) string {
	summary := renderTable(
		[]string{"Total", "Blocked", "Allowed", "No lyrics", "Block rate", "Avg confidence"},
		[][]string{{
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Blocked),
			strconv.Itoa(s.Allowed),
			strconv.Itoa(s.NoLyrics),
			Percent(s.BlockRate),
			Confidence(s.AverageConfidence),
		}},
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
	if len(s.Reasons) == 0 {
		return summary
	}

	reasons := slices.SortedFunc(maps.Keys(s.Reasons), func(a, b string) int {
		if c := cmp.Compare(s.Reasons[b], s.Reasons[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	rows := make([][]string, 0, len(reasons))
	for _, r := range reasons {
		rows = append(rows, []string{r, strconv.Itoa(s.Reasons[r])})
	}
	return summary + "\n" + renderTable([]string{"Reason", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}

// CacheTable renders the cached verdict keys.
func CacheTable(cs filter.CacheStats) string {
	rows := make([][]string, 0, len(cs.Keys))
	for _, k := range cs.Keys {
		rows = append(rows, []string{k})
	}
	return fmt.Sprintf("%s\n%s", Muted(fmt.Sprintf("%d cached verdicts", cs.Size)), renderTable([]string{"Key"}, rows, nil))
}

// OverridesTable renders persisted manual overrides.
func OverridesTable(overrides []*models.Override) string {
	rows := make([][]string, 0, len(overrides))
	for _, o := range overrides {
		rows = append(rows, []string{
			strconv.Itoa(o.Sequence()),
			o.TrackID(),
			o.Level().String(),
			yesNo(o.StrictMode()),
			Decision(o.ShouldBlock()),
			o.Reason(),
			o.UpdatedAt().Format(timeLayout),
		})
	}
	return renderTable(
		[]string{"#", "Track ID", "Level", "Strict", "Decision", "Reason", "Updated"},
		rows,
		[]columnAlignment{alignRight},
	)
}

// HistoryTable renders recorded verdicts.
func HistoryTable(records []*models.VerdictRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Sequence()),
			r.Track().Label(),
			r.Level().String(),
			Decision(r.ShouldBlock()),
			Confidence(r.Confidence()),
			r.Reason(),
			r.CreatedAt().Format(timeLayout),
		})
	}
	return renderTable(
		[]string{"#", "Track", "Level", "Decision", "Confidence", "Reason", "Checked"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

// SuiteTable renders the outcome of a test suite with a pass count footer.
func SuiteTable(name string, results []filter.SuiteResult) string {
	passed := 0
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Status == filter.StatusPass {
			passed++
		}
		rows = append(rows, []string{
			fmt.Sprintf("%s - %s", r.Track.Artist, r.Track.Title),
			string(r.Track.Expected),
			Decision(r.Verdict.ShouldBlock),
			Confidence(r.Verdict.Confidence),
			Status(string(r.Status)),
			r.Duration.Round(time.Millisecond).String(),
		})
	}

	out := renderTable(
		[]string{"Track", "Expected", "Decision", "Confidence", "Status", "Took"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
	)
	return fmt.Sprintf("%s\n\n%s\n%s", Title("Suite: "+name), out, Muted(fmt.Sprintf("%d/%d passed", passed, len(results))))
}

// LevelsTable renders every filter level with its lexicon sizes.
func LevelsTable() string {
	levels := lexicon.Levels()
	rows := make([][]string, 0, len(levels))
	for _, l := range levels {
		b, err := lexicon.Describe(l)
		if err != nil {
			continue
		}
		rows = append(rows, []string{
			l.String(),
			b.Name,
			string(b.Strictness),
			strconv.Itoa(len(b.Words)),
			strconv.Itoa(len(b.Phrases)),
			b.Description,
		})
	}
	return renderTable(
		[]string{"Level", "Name", "Strictness", "Words", "Phrases", "Description"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	)
}

// SettingsTable renders filter settings as key/value rows.
func SettingsTable(s filter.Settings) string {
	return renderTable([]string{"Setting", "Value"}, [][]string{
		{"level", s.Level.String()},
		{"strict_mode", strconv.FormatBool(s.StrictMode)},
		{"block_unknown", strconv.FormatBool(s.BlockUnknown)},
		{"min_confidence", Confidence(s.MinConfidence)},
	}, nil)
}
