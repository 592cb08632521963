// Package flows contains pure-function orchestrators for the token-minting
// boundaries of the gating engine.
//
// Each flow function (RunLogin, RunRefresh, RunLogout) accepts a typed
// dependency struct and returns results without side-effects beyond those
// dependencies. This design enables exhaustive unit testing with mock
// dependencies and keeps the Engine type thin.
//
// # What this package must NOT do
//
//   - Hold mutable state between calls.
//   - Import webgate (to avoid import cycles).
//   - Touch the HTTP layer — cookie writes stay with the Engine and its
//     callers.
package flows
