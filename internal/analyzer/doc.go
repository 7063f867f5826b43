// Package analyzer classifies lyrics text against a [lexicon.Bundle].
//
// # Pipeline
//
//  1. Normalize: lowercase, replace anything that is not an ASCII word character or whitespace with a space,
//     collapse runs of whitespace and trim.
//  2. Match words: every token is compared against every lexicon word and its morphological variations.
//     A token matches when it equals a variation or contains one. Context-sensitive words are skipped
//     unless strict mode is on.
//  3. Match phrases: substring search on the normalized text.
//  4. Score, then decide: content is clean when the confidence is strictly below the threshold.
//
// # Scoring
//
// Each flagged word adds 0.30 (heavy profanity), 0.10 (mild profanity) or 0.20. Each phrase adds 0.25.
// A frequency bonus of 0.30 (more than 10% of tokens) or 0.15 (more than 5%) follows, and the total is capped at 1.0.
// Terms are accumulated in the order they were flagged so the floating point result is reproducible.
package analyzer
