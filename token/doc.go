// Package token manages session and refresh credential issuance and
// verification using configured HMAC secrets and strict validation semantics
// suitable for per-request gating paths.
package token
