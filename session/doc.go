// Package session carries session credentials across the HTTP boundary.
//
// The [CookieStore] is the primary transport: it reads and writes the signed
// session token through a single hardened cookie. The [LegacyReader] is a
// compatibility shim for the older two-cookie presence check and performs no
// verification of its own.
//
// # What this package must NOT do
//
//   - Verify or issue tokens (that is the token package's job).
//   - Mutate anything other than the response under construction.
package session
