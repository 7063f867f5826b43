// Package lexicon holds the curated word and phrase tables used to classify lyrics.
//
// # Levels
//
// Each [Level] maps to a fixed [Bundle]. Bundles are curated by hand rather than derived from a strictness rule:
//   - [SqueakyClean] : every word table and every phrase
//   - [FamilyFriendly] : the same coverage as SqueakyClean; it differs only in the default settings callers apply
//   - [TeenSafe] : a hand-picked slice of heavy profanity plus the sexual and drug tables, and only the phrases
//     mentioning drugs or sex
//
// # Context Sensitivity
//
// Some terms are ordinary in clean lyrics ("hell", "kill", "high"). [IsContextSensitive] reports them so the
// analyzer can skip them unless strict mode is requested.
//
// Tables are package-level values that are never mutated; accessors return copies.
package lexicon
