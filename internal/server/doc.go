// Package server provides HTTP routing, middleware and the JSON API for the content filter.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first), so the first middleware added
// sees the request first. [BasicRouter] uses [http.ServeMux] internally with method filtering.
//
// [Logging] and [Recover] are the stock middleware used by `cleanify serve`.
//
// # Filter API
//
// [FilterHandler] exposes a [filter.Engine] over JSON:
//
//	POST   /api/check           {track, settings?}                    -> verdict
//	POST   /api/batch           {tracks, settings?}                   -> verdicts, input order
//	POST   /api/stats           {tracks, settings?}                   -> aggregate stats
//	POST   /api/test            {lyrics, settings?}                   -> analysis
//	POST   /api/override        {track_id, block, reason, settings?}  -> 204
//	GET    /api/cache                                                 -> cache size and keys
//	DELETE /api/cache                                                 -> 204
//	GET    /api/settings/{level}                                      -> default settings
//	GET    /health
//
// Requests without settings use the default settings of the configured level. Settings without a level
// inherit it. Overrides are persisted through an [OverrideSaver] when one is configured, before they are
// applied to the engine.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
