package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authmodule "github.com/dmitrymomot/sessionkit/modules/auth"
	"github.com/dmitrymomot/sessionkit/pkg/auth"
	"github.com/dmitrymomot/sessionkit/pkg/csrf"
	"github.com/dmitrymomot/sessionkit/pkg/session"
)

type testEnv struct {
	server  *httptest.Server
	client  *http.Client
	users   *auth.MemoryStorage
	manager *session.Manager
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	users := auth.NewMemoryStorage()
	userSvc := auth.NewService(users, auth.WithBcryptCost(bcrypt.MinCost))

	store := session.NewMemoryStore()
	manager, err := session.New(store, "session-secret-for-router-tests")
	require.NoError(t, err)

	issuer, err := csrf.NewIssuer("csrf-secret-for-router-tests")
	require.NoError(t, err)

	// Plain-HTTP test server; secure cookies would be dropped by the jar.
	svc := authmodule.NewService(
		authmodule.Config{SecureCookies: false},
		userSvc, manager, issuer,
	)

	mux := chi.NewRouter()
	mux.Mount("/auth", svc.Router())

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		server:  server,
		client:  &http.Client{Jar: jar},
		users:   users,
		manager: manager,
	}
}

func (e *testEnv) postJSON(t *testing.T, path string, body any, headers map[string]string) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()

	resp, err := e.client.Get(e.server.URL + path)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) cookieValue(t *testing.T, name string) string {
	t.Helper()

	u, err := url.Parse(e.server.URL)
	require.NoError(t, err)

	for _, c := range e.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func setCookieNames(resp *http.Response) map[string]*http.Cookie {
	cookies := make(map[string]*http.Cookie)
	for _, c := range resp.Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}

func TestAuthFlow(t *testing.T) {
	env := setupEnv(t)

	t.Run("me without cookie is unauthenticated", func(t *testing.T) {
		resp := env.get(t, "/auth/me")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	var registeredID int64

	t.Run("register sets session and csrf cookies", func(t *testing.T) {
		resp := env.postJSON(t, "/auth/register", map[string]string{
			"email":    "a@x.com",
			"password": "secret1",
			"name":     "Alice",
		}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		cookies := setCookieNames(resp)
		require.Contains(t, cookies, "sid")
		require.Contains(t, cookies, "csrf")
		assert.True(t, cookies["sid"].HttpOnly)
		assert.False(t, cookies["csrf"].HttpOnly)

		identity := decodeBody[authmodule.Identity](t, resp)
		assert.Equal(t, "a@x.com", identity.Email)
		assert.Equal(t, "Alice", identity.Name)
		registeredID = identity.ID
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		resp := env.postJSON(t, "/auth/register", map[string]string{
			"email":    "a@x.com",
			"password": "secret2",
		}, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("wrong password sets no session cookie", func(t *testing.T) {
		resp := env.postJSON(t, "/auth/login", map[string]string{
			"email":    "a@x.com",
			"password": "wrong-pass",
		}, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.NotContains(t, setCookieNames(resp), "sid")
	})

	t.Run("unknown email fails identically to wrong password", func(t *testing.T) {
		wrongPass := env.postJSON(t, "/auth/login", map[string]string{
			"email": "a@x.com", "password": "wrong-pass",
		}, nil)
		unknown := env.postJSON(t, "/auth/login", map[string]string{
			"email": "nobody@x.com", "password": "secret1",
		}, nil)

		assert.Equal(t, wrongPass.StatusCode, unknown.StatusCode)
		bodyA := decodeBody[map[string]string](t, wrongPass)
		bodyB := decodeBody[map[string]string](t, unknown)
		assert.Equal(t, bodyA, bodyB)
	})

	t.Run("me with cookie returns identity", func(t *testing.T) {
		resp := env.get(t, "/auth/me")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		identity := decodeBody[authmodule.Identity](t, resp)
		assert.Equal(t, registeredID, identity.ID)
		assert.Equal(t, "a@x.com", identity.Email)
	})

	t.Run("refresh without csrf header fails and keeps session", func(t *testing.T) {
		resp := env.postJSON(t, "/auth/refresh", nil, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		// The old session must remain usable.
		me := env.get(t, "/auth/me")
		defer me.Body.Close()
		assert.Equal(t, http.StatusOK, me.StatusCode)
	})

	t.Run("refresh rotates the session", func(t *testing.T) {
		oldSid := env.cookieValue(t, "sid")
		token := env.cookieValue(t, "csrf")
		require.NotEmpty(t, oldSid)
		require.NotEmpty(t, token)

		resp := env.postJSON(t, "/auth/refresh", nil, map[string]string{"x-csrf": token})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		newSid := env.cookieValue(t, "sid")
		assert.NotEqual(t, oldSid, newSid)

		// The old identifier no longer resolves.
		_, err := env.manager.Resolve(t.Context(), oldSid)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
		_, err = env.manager.Resolve(t.Context(), newSid)
		assert.NoError(t, err)
	})

	t.Run("logout ends the session and clears cookies", func(t *testing.T) {
		sid := env.cookieValue(t, "sid")
		token := env.cookieValue(t, "csrf")

		resp := env.postJSON(t, "/auth/logout", nil, map[string]string{"x-csrf": token})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		cookies := setCookieNames(resp)
		require.Contains(t, cookies, "sid")
		require.Contains(t, cookies, "csrf")
		assert.Less(t, cookies["sid"].MaxAge, 0)
		assert.Less(t, cookies["csrf"].MaxAge, 0)

		_, err := env.manager.Resolve(t.Context(), sid)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)

		me := env.get(t, "/auth/me")
		defer me.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, me.StatusCode)
	})
}

func TestAuthFlow_DeletedUser(t *testing.T) {
	env := setupEnv(t)

	resp := env.postJSON(t, "/auth/register", map[string]string{
		"email":    "gone@x.com",
		"password": "secret1",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	identity := decodeBody[authmodule.Identity](t, resp)

	// The account disappears while its session is still live; the session
	// must stop resolving.
	require.NoError(t, env.users.DeleteUser(t.Context(), identity.ID))

	me := env.get(t, "/auth/me")
	defer me.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, me.StatusCode)
}

func TestAuthFlow_Validation(t *testing.T) {
	env := setupEnv(t)

	t.Run("bad email", func(t *testing.T) {
		resp := env.postJSON(t, "/auth/register", map[string]string{
			"email":    "not-an-email",
			"password": "secret1",
		}, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("short password", func(t *testing.T) {
		resp := env.postJSON(t, "/auth/register", map[string]string{
			"email":    "b@x.com",
			"password": "tiny",
		}, nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
