package signal

import "net/http"

// newOriginChecker builds the upgrader's origin policy from the configured
// allow-list. A single "*" entry allows every origin; an absent Origin
// header (non-browser clients) is always allowed.
func newOriginChecker(allowed []string) func(r *http.Request) bool {
	allowAll := false
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			allowAll = true
			continue
		}
		set[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		if allowAll {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
