package middleware

import (
	"context"
	"net/http"

	webgate "github.com/veltrabank/webgate"
	"github.com/veltrabank/webgate/token"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the verified session claims the guard placed on
// the request context, when the request carries a valid credential.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*token.Claims)
	return claims, ok
}

// Guard returns middleware that runs every inbound request through the
// gate and applies its decision: cookie mutations first, then either a
// redirect or pass-through with claims injected into the context.
func Guard(engine *webgate.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				// Fail closed: an unconfigured gate must not expose
				// private pages.
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			decision := engine.Evaluate(r)

			for _, op := range decision.CookieOps {
				if op.Kind == webgate.CookieOpClearSession {
					engine.ClearSessionCookie(w)
				}
			}

			if decision.Redirects() {
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
				return
			}

			if decision.Claims != nil {
				ctx := context.WithValue(r.Context(), claimsContextKey{}, decision.Claims)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}
