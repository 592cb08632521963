// Package middleware exposes the HTTP adapter for the webgate Engine.
//
// [Guard] runs every request through [webgate.Engine.Evaluate], applies the
// resulting cookie operations and redirect, and injects verified claims
// into the request context for downstream handlers.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement gating logic itself — all decisions are delegated to
// Engine.Evaluate.
//
// # What this package must NOT do
//
//   - Classify routes or verify tokens directly (delegates to Engine).
//   - Emit anything user-visible beyond the redirect itself.
package middleware
