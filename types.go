package webgate

import "github.com/veltrabank/webgate/token"

// Action is what the surrounding framework should do with the current
// request after gating.
type Action uint8

const (
	// ActionPass is an exported constant or variable used by the gating engine.
	ActionPass Action = iota
	// ActionRedirect is an exported constant or variable used by the gating engine.
	ActionRedirect
)

// CookieOpKind identifies a cookie mutation the response must apply before
// the action takes effect.
type CookieOpKind uint8

const (
	// CookieOpClearSession removes the session cookie so a corrupt or
	// expired credential is not retried indefinitely.
	CookieOpClearSession CookieOpKind = iota
)

// CookieOp defines a public type used by webgate APIs.
//
// CookieOp instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CookieOp struct {
	Kind CookieOpKind
}

// Decision is the gate's verdict for one request: pass through or redirect,
// plus any cookie mutations to apply to the response. Claims is set when the
// request carries a verified session credential.
type Decision struct {
	Action    Action
	Location  string
	CookieOps []CookieOp
	Claims    *token.Claims
}

// Redirects reports whether the decision is a redirect.
func (d Decision) Redirects() bool {
	return d.Action == ActionRedirect
}

// ClearsSession reports whether the decision carries a clear-session
// cookie op.
func (d Decision) ClearsSession() bool {
	for _, op := range d.CookieOps {
		if op.Kind == CookieOpClearSession {
			return true
		}
	}
	return false
}

// verdict is the gate-internal authentication determination. stale marks a
// credential that was present but failed verification, which triggers
// cookie cleanup on the way out.
type verdict struct {
	authenticated bool
	claims        *token.Claims
	stale         bool
}
