// Package webgate provides the request-gating layer for the Veltra banking
// dashboard: per-request route classification, session credential
// verification, and the resulting allow/redirect decision, plus the token
// issuance service (login, refresh, logout) the gate depends on.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// webgate is the public surface. It exposes [Engine], [Builder], [Config],
// and the [Decision] value consumed by the HTTP middleware. Flow
// orchestration and rate limiting live under internal/ and are never
// exported. Route matching, credential codecs, and cookie transport live in
// the routes, token, and session subpackages.
//
// # What this package must NOT do
//
//   - Check credentials against a user store (that collaborator is
//     external; [Engine.Login] receives already-verified claims).
//   - Perform authorization beyond "has a valid session".
//   - Surface verification errors to callers: every gate failure resolves
//     to a pass or a redirect.
//
// # Performance contract
//
// Evaluate is the hot path. It is a pure function over (path, cookies,
// configuration) with no I/O, no locks, and no Redis round-trips; the
// optional limiter is consulted only by the token-minting boundaries.
package webgate
