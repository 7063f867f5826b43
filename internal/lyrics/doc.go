// Package lyrics retrieves song lyrics from external providers.
//
// A [Service] holds an ordered list of [Provider] strategies and returns the first non-empty result.
// Artist and title are cleaned with [StripParenthetical] before any provider sees them, so
// "Cardi B (feat. Megan Thee Stallion)" is queried as "Cardi B".
//
// # Providers
//
//   - [LyricsOvh]: GET {base}/v1/{artist}/{title}, no credential.
//   - [Genius]: search by "{artist} {title}" with a bearer token, then hand the first hit to a [BodyFetcher].
//     The Genius API does not serve lyrics bodies, so the default fetcher returns nothing.
//     Without a token the provider is skipped.
//
// # Errors
//
// Provider failures are logged and treated as "no lyrics". [Service.GetLyrics] only returns an error
// when the caller's context is done.
//
// All outbound requests pass through a shared [rate.Limiter] and a per-attempt timeout.
package lyrics
