package filter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/cleanify/internal/analyzer"
	"github.com/desertthunder/cleanify/internal/models"
	"github.com/desertthunder/cleanify/internal/shared"
)

const DefaultBatchSize = 5

// LyricsSource returns lyrics for a track, or an empty string when none are found.
//
// Implementations return an error only when they cannot answer at all (e.g. the context is done).
type LyricsSource interface {
	GetLyrics(ctx context.Context, artist, title string) (string, error)
}

// Recorder receives every freshly computed verdict. Cached and fail-safe verdicts are not recorded.
type Recorder interface {
	Record(ctx context.Context, v Verdict, s Settings) error
}

// Engine produces memoized block/allow verdicts for tracks.
type Engine struct {
	source    LyricsSource
	analyzer  *analyzer.Analyzer
	cache     *verdictCache
	keyFunc   func(string, Settings) string
	recorder  Recorder
	batchSize int
	logger    *log.Logger
}

// Option configures an [Engine].
type Option func(*Engine)

// WithStrictCacheKey keys the memo on blockUnknown and minConfidence as well.
func WithStrictCacheKey() Option {
	return func(e *Engine) { e.keyFunc = StrictCacheKey }
}

// WithRecorder hands fresh verdicts to r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithBatchSize sets the number of tracks evaluated concurrently. Non-positive values keep the default.
func WithBatchSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.batchSize = n
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = shared.WithLogger(l, "component", "filter") }
}

// New creates an [Engine] backed by source.
func New(source LyricsSource, opts ...Option) *Engine {
	e := &Engine{
		source:    source,
		analyzer:  analyzer.New(),
		cache:     newVerdictCache(),
		keyFunc:   CacheKey,
		batchSize: DefaultBatchSize,
		logger:    shared.WithLogger(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Key returns the memo key the engine uses for trackID under s.
func (e *Engine) Key(trackID string, s Settings) string {
	return e.keyFunc(trackID, s)
}

// ShouldBlockTrack returns the verdict for a track. It never fails: errors yield the fail-safe verdict.
func (e *Engine) ShouldBlockTrack(ctx context.Context, trackID, title, artist string, s Settings) Verdict {
	key := e.Key(trackID, s)
	if v, ok := e.cache.get(key); ok {
		e.logger.Debug("cache hit", "key", key)
		return v
	}

	track := models.Track{ID: trackID, Name: title, Artist: artist}

	v, err := e.evaluate(ctx, track, s)
	if err != nil {
		e.logger.Error("blocking track after failed analysis", "track", track.Label(), "id", trackID, "error", err)
		return failSafeVerdict(track)
	}

	stored, ok := e.cache.setIfAbsent(key, v)
	if !ok {
		e.logger.Debug("verdict already memoized", "key", key)
		return stored
	}
	e.record(ctx, v, s)
	return v
}

func (e *Engine) evaluate(ctx context.Context, track models.Track, s Settings) (v Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", shared.ErrAnalysisFailed, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return Verdict{}, err
	}

	lyrics, err := e.source.GetLyrics(ctx, track.Artist, track.Name)
	if err != nil {
		return Verdict{}, err
	}

	if strings.TrimSpace(lyrics) == "" {
		return noLyricsVerdict(track, s.BlockUnknown), nil
	}

	res, err := e.analyzer.Analyze(lyrics, s.Options())
	if err != nil {
		return Verdict{}, err
	}
	return analyzedVerdict(track, res), nil
}

func (e *Engine) record(ctx context.Context, v Verdict, s Settings) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Record(ctx, v, s); err != nil {
		e.logger.Warn("failed to record verdict", "id", v.Track.ID, "error", err)
	}
}

// FilterTracks evaluates tracks in batches and returns verdicts in input order.
func (e *Engine) FilterTracks(ctx context.Context, tracks []models.Track, s Settings) []Verdict {
	return e.FilterTracksWithProgress(ctx, nil, tracks, s)
}

// FilterTracksWithProgress is [Engine.FilterTracks] with progress updates sent on progress.
func (e *Engine) FilterTracksWithProgress(ctx context.Context, progress chan<- ProgressUpdate, tracks []models.Track, s Settings) []Verdict {
	total := len(tracks)
	results := make([]Verdict, total)

	var done, blocked atomic.Int64
	for start, batch := 0, 1; start < total; start, batch = start+e.batchSize, batch+1 {
		end := min(start+e.batchSize, total)
		sendProgress(progress, startBatchUpdate(int(done.Load()), total, batch, end-start))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				t := tracks[i]
				v := e.ShouldBlockTrack(ctx, t.ID, t.Name, t.Artist, s)
				results[i] = v

				if v.ShouldBlock {
					blocked.Add(1)
				}
				sendProgress(progress, checkTrackUpdate(int(done.Add(1)), total, t, v))
			}(i)
		}
		wg.Wait()
	}

	sendProgress(progress, finishRunUpdate(total, int(blocked.Load())))
	return results
}

// GetFilterStats evaluates tracks and summarizes the verdicts.
func (e *Engine) GetFilterStats(ctx context.Context, tracks []models.Track, s Settings) Stats {
	return Summarize(e.FilterTracks(ctx, tracks, s))
}

// AddManualOverride stores a synthetic verdict for trackID under s. It replaces any memoized verdict.
func (e *Engine) AddManualOverride(trackID string, shouldBlock bool, reason string, s Settings) {
	e.cache.set(e.Key(trackID, s), overrideVerdict(trackID, shouldBlock, reason))
	e.logger.Info("manual override", "id", trackID, "block", shouldBlock, "level", s.Level)
}

// ClearCache drops every memoized verdict, overrides included.
func (e *Engine) ClearCache() {
	e.cache.clear()
}

// CacheStats reports the memo size and its keys in sorted order.
func (e *Engine) CacheStats() CacheStats {
	return e.cache.stats()
}

// TestFilter analyzes lyrics directly, bypassing retrieval and the memo.
func (e *Engine) TestFilter(lyrics string, s Settings) (analyzer.Result, error) {
	return e.analyzer.Analyze(lyrics, s.Options())
}
