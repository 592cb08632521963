package routes

import "strings"

// Pattern is a single route rule: an exact path, or a prefix with the
// wildcard marker "/*" meaning the path itself and everything nested below
// it.
type Pattern struct {
	Prefix   string
	Wildcard bool
}

// Parse converts a pattern string into a [Pattern]. A trailing "/*" marks
// a wildcard prefix; anything else is an exact path.
func Parse(raw string) Pattern {
	if p, ok := strings.CutSuffix(raw, "/*"); ok {
		return Pattern{Prefix: p, Wildcard: true}
	}
	return Pattern{Prefix: raw}
}

// ParseAll converts a list of pattern strings.
func ParseAll(raw []string) []Pattern {
	patterns := make([]Pattern, 0, len(raw))
	for _, r := range raw {
		patterns = append(patterns, Parse(r))
	}
	return patterns
}

// Matches reports whether path falls under the pattern. Matching is
// case-sensitive. A wildcard prefix only matches at a segment boundary:
// "/dashboard/*" matches "/dashboard" and "/dashboard/cards" but not
// "/dashboard-foo".
func (p Pattern) Matches(path string) bool {
	if path == p.Prefix {
		return true
	}
	if !p.Wildcard {
		return false
	}
	return strings.HasPrefix(path, p.Prefix+"/")
}

// Class reports which configured sets a path belongs to. A path may appear
// in both; precedence between the two is the gate's decision, not the
// classifier's.
type Class struct {
	Public  bool
	Private bool
}

// Classifier holds the two ordered pattern lists consulted on every gated
// request. It is plain immutable data; construction composes defaults with
// optional extra entries.
type Classifier struct {
	public  []Pattern
	private []Pattern
}

// NewClassifier builds a classifier over the given pattern lists.
func NewClassifier(public, private []Pattern) *Classifier {
	return &Classifier{public: public, private: private}
}

// Classify reports the path's membership in the public and private sets.
func (c *Classifier) Classify(path string) Class {
	return Class{
		Public:  matchAny(c.public, path),
		Private: matchAny(c.private, path),
	}
}

func matchAny(patterns []Pattern, path string) bool {
	for _, p := range patterns {
		if p.Matches(path) {
			return true
		}
	}
	return false
}

// Bypass reports whether the path is excluded from classification entirely:
// API routes, framework-internal assets, and static files always pass
// through unmodified. Checked before classification runs.
func Bypass(path string) bool {
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		return true
	}
	if strings.HasPrefix(path, "/_") {
		return true
	}
	// Static assets: a dot in the final segment (favicon.ico, app.css, ...).
	if i := strings.LastIndexByte(path, '/'); i >= 0 && strings.Contains(path[i+1:], ".") {
		return true
	}
	return false
}

// DefaultPublic returns the default public route set: root, the auth pages,
// and the static informational pages.
func DefaultPublic() []Pattern {
	return ParseAll([]string{
		"/",
		"/auth/login",
		"/auth/register",
		"/auth/logout",
		"/auth/forgot-password",
		"/auth/reset-password",
		"/auth/verification",
		"/about",
		"/contact",
		"/privacy",
		"/terms",
	})
}

// DefaultPrivate returns the default private route set: every authenticated
// app section, as wildcard prefixes.
func DefaultPrivate() []Pattern {
	return ParseAll([]string{
		"/dashboard/*",
		"/banking/*",
		"/cards/*",
		"/wallet/*",
		"/statements/*",
		"/settings/*",
		"/support/*",
		"/beneficiary/*",
		"/kyc/*",
		"/transactions/*",
	})
}
