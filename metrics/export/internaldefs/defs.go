package internaldefs

import (
	webgate "github.com/veltrabank/webgate"
)

// CounterDef defines a public type used by webgate APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   webgate.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the gating engine.
var CounterDefs = []CounterDef{
	{ID: webgate.MetricDecisionPass, Name: "webgate_decision_pass_total", Help: "Requests passed through by the gate."},
	{ID: webgate.MetricDecisionBypass, Name: "webgate_decision_bypass_total", Help: "Requests excluded from classification (static, framework, API paths)."},
	{ID: webgate.MetricDecisionRedirectLogin, Name: "webgate_decision_redirect_login_total", Help: "Unauthenticated private-route requests redirected to login."},
	{ID: webgate.MetricDecisionRedirectDashboard, Name: "webgate_decision_redirect_dashboard_total", Help: "Authenticated auth-page requests redirected to the dashboard."},
	{ID: webgate.MetricSessionCookieCleared, Name: "webgate_session_cookie_cleared_total", Help: "Session cookies cleared after failed verification or logout."},
	{ID: webgate.MetricTokenExpired, Name: "webgate_token_expired_total", Help: "Session tokens rejected as expired."},
	{ID: webgate.MetricTokenInvalid, Name: "webgate_token_invalid_total", Help: "Session tokens rejected as malformed or mis-signed."},
	{ID: webgate.MetricLegacyAccepted, Name: "webgate_legacy_accepted_total", Help: "Requests accepted by the legacy presence-only reader."},
	{ID: webgate.MetricLegacyBlobMalformed, Name: "webgate_legacy_blob_malformed_total", Help: "Legacy session blobs that failed JSON parsing."},
	{ID: webgate.MetricLoginIssued, Name: "webgate_login_issued_total", Help: "Credential pairs minted at login."},
	{ID: webgate.MetricLoginRateLimited, Name: "webgate_login_rate_limited_total", Help: "Rate-limited login attempts."},
	{ID: webgate.MetricRefreshSuccess, Name: "webgate_refresh_success_total", Help: "Successful refresh operations."},
	{ID: webgate.MetricRefreshFailure, Name: "webgate_refresh_failure_total", Help: "Failed refresh operations."},
	{ID: webgate.MetricRefreshRateLimited, Name: "webgate_refresh_rate_limited_total", Help: "Rate-limited refresh attempts."},
	{ID: webgate.MetricLogout, Name: "webgate_logout_total", Help: "Logout operations."},
}
