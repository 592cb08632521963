package flows

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	ClearSession func()
}

// RunLogout clears the client-side session. Tokens are stateless, so logout
// is purely cookie deletion; a credential that already left the client
// remains valid until its embedded expiry.
func RunLogout(deps LogoutDeps) {
	if deps.ClearSession != nil {
		deps.ClearSession()
	}
}
