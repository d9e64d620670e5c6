package csrf

import "net/http"

// DefaultCookieName is the cookie carrying the script-readable token.
const DefaultCookieName = "csrf"

// DefaultHeaderName is the header the frontend must echo the cookie into.
const DefaultHeaderName = "x-csrf"

// isSafeMethod reports whether the method has no side effects and therefore
// bypasses CSRF verification.
func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Protect returns middleware enforcing the double-submit check on mutating
// requests: the CSRF cookie and the echo header must both be present,
// byte-identical, and carry a valid signature. Every failure produces the
// same generic 403 so callers cannot distinguish the cause.
func (i *Issuer) Protect(cookieName, headerName string) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if headerName == "" {
		headerName = DefaultHeaderName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				forbidden(w)
				return
			}

			header := r.Header.Get(headerName)
			if header == "" {
				forbidden(w)
				return
			}

			if !tokensEqual(cookie.Value, header) {
				forbidden(w)
				return
			}

			if !i.Verify(cookie.Value) {
				forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// tokensEqual compares cookie and header values without leaking the position
// of the first differing byte.
func tokensEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var result byte
	for i := 0; i < len(a); i++ {
		result |= a[i] ^ b[i]
	}
	return result == 0
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"invalid csrf token"}`))
}
