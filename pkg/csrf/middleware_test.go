package csrf_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/csrf"
)

func protectedHandler(t *testing.T, issuer *csrf.Issuer) http.Handler {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return issuer.Protect(csrf.DefaultCookieName, csrf.DefaultHeaderName)(next)
}

func TestProtect(t *testing.T) {
	t.Parallel()

	issuer, err := csrf.NewIssuer(testSecret)
	require.NoError(t, err)

	token, err := issuer.Issue()
	require.NoError(t, err)

	handler := protectedHandler(t, issuer)

	t.Run("safe methods bypass", func(t *testing.T) {
		t.Parallel()

		for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(method, "/", nil)
			handler.ServeHTTP(w, r)
			assert.Equal(t, http.StatusOK, w.Code, "method %s should bypass", method)
		}
	})

	t.Run("missing cookie rejected", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.Header.Set(csrf.DefaultHeaderName, token)
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.AddCookie(&http.Cookie{Name: csrf.DefaultCookieName, Value: token})
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("cookie header mismatch rejected", func(t *testing.T) {
		t.Parallel()

		other, err := issuer.Issue()
		require.NoError(t, err)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.AddCookie(&http.Cookie{Name: csrf.DefaultCookieName, Value: token})
		r.Header.Set(csrf.DefaultHeaderName, other)
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid signature rejected", func(t *testing.T) {
		t.Parallel()

		forged := "Zm9yZ2VkLXJhdy12YWx1ZQ.Zm9yZ2VkLXNpZ25hdHVyZQ"

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.AddCookie(&http.Cookie{Name: csrf.DefaultCookieName, Value: forged})
		r.Header.Set(csrf.DefaultHeaderName, forged)
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rejections are indistinguishable", func(t *testing.T) {
		t.Parallel()

		var bodies []string
		for _, setup := range []func(r *http.Request){
			func(r *http.Request) {},
			func(r *http.Request) { r.AddCookie(&http.Cookie{Name: csrf.DefaultCookieName, Value: token}) },
			func(r *http.Request) { r.Header.Set(csrf.DefaultHeaderName, "bogus") },
		} {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			setup(r)
			handler.ServeHTTP(w, r)
			require.Equal(t, http.StatusForbidden, w.Code)
			bodies = append(bodies, w.Body.String())
		}
		assert.Equal(t, bodies[0], bodies[1])
		assert.Equal(t, bodies[1], bodies[2])
	})

	t.Run("all checks pass", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.AddCookie(&http.Cookie{Name: csrf.DefaultCookieName, Value: token})
		r.Header.Set(csrf.DefaultHeaderName, token)
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
