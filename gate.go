package webgate

import (
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/veltrabank/webgate/routes"
	"github.com/veltrabank/webgate/token"
)

// Evaluate runs the full gate for one inbound request: bypass check, route
// classification, credential verdict, then the decision table. It never
// fails: every malformed input resolves to one of the two safe defaults
// (redirect to login, or pass through).
func (e *Engine) Evaluate(r *http.Request) Decision {
	path := r.URL.Path

	if routes.Bypass(path) {
		e.metrics.Inc(MetricDecisionBypass)
		return Decision{Action: ActionPass}
	}

	class := e.classifier.Classify(path)
	v := e.readVerdict(r)
	return e.decide(path, class, v)
}

// readVerdict produces the authentication verdict for the request. The
// strict reader (verified session cookie) is consulted first; the legacy
// presence-only reader applies only when enabled and no session cookie is
// present at all.
func (e *Engine) readVerdict(r *http.Request) verdict {
	raw, present := e.cookies.Read(r)
	if present {
		claims, err := e.sessions.Verify(raw)
		if err == nil {
			return verdict{authenticated: true, claims: claims}
		}

		switch {
		case errors.Is(err, token.ErrExpired):
			e.metrics.Inc(MetricTokenExpired)
		default:
			e.metrics.Inc(MetricTokenInvalid)
		}
		e.logger.Debug("session token rejected",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		return verdict{stale: true}
	}

	if e.legacy != nil && e.legacy.Authenticated(r) {
		e.metrics.Inc(MetricLegacyAccepted)
		return verdict{authenticated: true}
	}

	return verdict{}
}

// decide is the pure decision table over (route class, verdict). It is
// independent of transport concerns and separately unit-testable.
//
//	login/register + authenticated  -> redirect to dashboard root
//	login/register + anonymous      -> pass
//	private only (not auth page)
//	  + anonymous                   -> redirect to login?redirect=<path>
//	private + authenticated         -> pass
//	public (even when also private) -> pass
//	unclassified                    -> pass (default-allow)
//
// A path in both sets stays public: only the login/register rows above
// override that.
//
// A stale credential (present but failed verification) additionally clears
// the session cookie so it is not retried indefinitely.
func (e *Engine) decide(path string, class routes.Class, v verdict) Decision {
	var ops []CookieOp
	if v.stale {
		ops = append(ops, CookieOp{Kind: CookieOpClearSession})
	}

	authPage := path == e.config.Routes.LoginPath || path == e.config.Routes.RegisterPath

	switch {
	case authPage && v.authenticated:
		e.metrics.Inc(MetricDecisionRedirectDashboard)
		return Decision{
			Action:    ActionRedirect,
			Location:  e.config.Routes.DashboardPath,
			CookieOps: ops,
			Claims:    v.claims,
		}

	case class.Private && !class.Public && !authPage && !v.authenticated:
		e.metrics.Inc(MetricDecisionRedirectLogin)
		return Decision{
			Action:    ActionRedirect,
			Location:  e.loginRedirect(path),
			CookieOps: ops,
		}

	default:
		e.metrics.Inc(MetricDecisionPass)
		return Decision{Action: ActionPass, CookieOps: ops, Claims: v.claims}
	}
}

func (e *Engine) loginRedirect(path string) string {
	q := url.Values{}
	q.Set(e.config.Routes.RedirectParam, path)
	return e.config.Routes.LoginPath + "?" + q.Encode()
}
