// Package rate provides internal primitives used to build Redis-backed rate
// limit keys, errors, and limiter behavior for the token-minting boundary.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit. Key prefixes:
//   - wg:l:  — login per-identifier
//   - wg:li: — login per-IP
//   - wg:r:  — refresh per-subject
//
// # What this package must NOT do
//
//   - Gate requests (the gate is stateless and never touches Redis).
//   - Be imported outside the webgate module.
package rate
