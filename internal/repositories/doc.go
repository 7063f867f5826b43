// Package repositories implements SQLite persistence for manual overrides and verdict history.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// Overrides support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
// Verdict records are append-only.
//
// Key Implementations:
//   - [OverrideRepository] : parent overrides keyed by (track, level, strict mode)
//   - [VerdictRepository] : history of freshly computed verdicts with flagged terms
//   - [VerdictRecorder] : adapts [VerdictRepository] to the filter engine's recorder hook
//   - [OverrideStore] : persists overrides and replays them into a filter engine at startup
//
// Sequence numbers provide stable, human-readable ordering (e.g., override #3, verdict #120) independent of UUIDs and creation timestamps.
// [NextSequence] increments the counter row of the overrides or verdicts sequence table.
package repositories
