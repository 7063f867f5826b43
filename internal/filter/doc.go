// Package filter decides whether tracks should be blocked under a family-safety policy.
//
// An [Engine] fetches lyrics through a [LyricsSource], classifies them with an [analyzer.Analyzer]
// and memoizes the [Verdict] per (track id, level, strict mode). The memo is owned by the engine,
// unbounded, and only emptied by [Engine.ClearCache]. Changing minConfidence or blockUnknown does not
// invalidate an entry unless the engine was built with [WithStrictCacheKey].
//
// # Verdict paths
//
//   - cached: returned as is
//   - no lyrics: blocked (0.8) or allowed (0.2) according to Settings.BlockUnknown
//   - analyzed: blocked when the analysis is not clean; confidence is the analysis score
//   - fail-safe: any analysis failure, panic or cancelled context blocks with 0.9 and is not cached
//
// Manual overrides are synthetic verdicts written under the same key, so they win until the cache is cleared.
//
// # Batches
//
// [Engine.FilterTracks] evaluates tracks in batches (default 5). Tracks in a batch run concurrently and each batch
// completes before the next starts. Results keep input order. Progress is reported on an optional channel with
// non-blocking sends.
package filter
