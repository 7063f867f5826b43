package filter

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/cleanify/internal/models"
	"github.com/desertthunder/cleanify/internal/shared"
)

// Expectation is the outcome a suite track is expected to produce.
type Expectation string

const (
	ExpectBlocked Expectation = "blocked"
	ExpectSafe    Expectation = "safe"
	ExpectDepends Expectation = "depends"
)

// SuiteStatus is the outcome of one suite check.
type SuiteStatus string

const (
	StatusPass SuiteStatus = "pass"
	StatusFail SuiteStatus = "fail"
)

// SuiteTrack is a known track with an expected verdict.
type SuiteTrack struct {
	Artist   string
	Title    string
	Expected Expectation
}

// SuiteResult is the verdict for one suite track.
type SuiteResult struct {
	Track    SuiteTrack    `json:"track"`
	Verdict  Verdict       `json:"verdict"`
	Status   SuiteStatus   `json:"status"`
	Duration time.Duration `json:"duration"`
}

var suiteOrder = []string{"explicit", "clean", "borderline"}

var suites = map[string][]SuiteTrack{
	"explicit": {
		{"Eminem", "The Real Slim Shady", ExpectBlocked},
		{"Cardi B", "WAP", ExpectBlocked},
		{"N.W.A", "F*** Tha Police", ExpectBlocked},
		{"Lil Wayne", "A Milli", ExpectBlocked},
	},
	"clean": {
		{"Taylor Swift", "Shake It Off", ExpectSafe},
		{"Ed Sheeran", "Perfect", ExpectSafe},
		{"Adele", "Hello", ExpectSafe},
		{"The Beatles", "Here Comes The Sun", ExpectSafe},
	},
	"borderline": {
		{"Maroon 5", "Animals", ExpectDepends},
		{"The Weeknd", "Can't Feel My Face", ExpectDepends},
		{"Ariana Grande", "Side to Side", ExpectDepends},
	},
}

// SuiteNames returns the known suites in display order.
func SuiteNames() []string {
	return append([]string(nil), suiteOrder...)
}

// Suite returns the tracks of the named suite.
func Suite(name string) ([]SuiteTrack, error) {
	tracks, ok := suites[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown suite %q", shared.ErrInvalidArgument, name)
	}
	return append([]SuiteTrack(nil), tracks...), nil
}

// Check compares a verdict with the expectation. Borderline tracks always pass.
func (t SuiteTrack) Check(v Verdict) SuiteStatus {
	switch {
	case t.Expected == ExpectBlocked && !v.ShouldBlock:
		return StatusFail
	case t.Expected == ExpectSafe && v.ShouldBlock:
		return StatusFail
	default:
		return StatusPass
	}
}

// RunSuite checks every track of the named suite sequentially.
func (e *Engine) RunSuite(ctx context.Context, name string, s Settings) ([]SuiteResult, error) {
	tracks, err := Suite(name)
	if err != nil {
		return nil, err
	}

	results := make([]SuiteResult, 0, len(tracks))
	for i, t := range tracks {
		start := time.Now()
		track := models.Track{ID: fmt.Sprintf("suite-%s-%d", name, i+1), Name: t.Title, Artist: t.Artist}

		v := e.ShouldBlockTrack(ctx, track.ID, track.Name, track.Artist, s)
		results = append(results, SuiteResult{Track: t, Verdict: v, Status: t.Check(v), Duration: time.Since(start)})
	}
	return results, nil
}
