package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"datachat/apperr"
	"datachat/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const credentialYAML = `
credentials:
  usernames:
    jsmith:
      email: jsmith@example.com
      name: John Smith
      password: abc123
cookie:
  name: dashboard_cookie
  key: test-signing-key
  expiry_days: 30
`

func newAuthenticator(t *testing.T, yaml string) *Authenticator {
	t.Helper()
	af, err := config.ParseAuthFile([]byte(yaml))
	require.NoError(t, err)
	return New(af, false)
}

func TestLoginAndVerify(t *testing.T) {
	a := newAuthenticator(t, credentialYAML)

	token, claims, err := a.Login("jsmith", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "jsmith", claims.Username())
	assert.Equal(t, "John Smith", claims.Name)
	assert.NotEmpty(t, claims.SessionID)

	got, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, claims.SessionID, got.SessionID)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), got.ExpiresAt.Time, time.Minute)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newAuthenticator(t, credentialYAML)

	tests := []struct {
		name, user, pass string
	}{
		{"wrong password", "jsmith", "nope"},
		{"unknown user", "rbriggs", "abc123"},
		{"empty password", "jsmith", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := a.Login(tt.user, tt.pass)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
			assert.Equal(t, "Username/password is incorrect", err.Error())
		})
	}
}

func TestVerifyRejects(t *testing.T) {
	a := newAuthenticator(t, credentialYAML)
	token, _, err := a.Login("jsmith", "abc123")
	require.NoError(t, err)

	other := newAuthenticator(t, credentialYAML)
	other.cookie.Key = "different-key"

	_, err = other.Verify(token)
	assert.EqualError(t, err, "Invalid session")

	_, err = a.Verify(token + "x")
	assert.Error(t, err)

	_, err = a.Verify("")
	assert.EqualError(t, err, "Missing session")

	a.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
	_, err = a.Verify(token)
	assert.EqualError(t, err, "Session expired")
}

func TestCookies(t *testing.T) {
	a := newAuthenticator(t, credentialYAML)

	c := a.Cookie("tok")
	assert.Equal(t, "dashboard_cookie", c.Name)
	assert.Equal(t, 30*24*3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	assert.Equal(t, -1, a.ClearCookie().MaxAge)
}

func TestSessionCookieWhenNoExpiry(t *testing.T) {
	a := newAuthenticator(t, `
credentials:
  usernames:
    u: {email: u@example.com, name: U, password: pw}
cookie: {name: c, key: k, expiry_days: 0}
`)
	assert.Equal(t, 0, a.Cookie("tok").MaxAge)
	assert.Equal(t, 24*time.Hour, a.Lifetime())
}

func TestLongestExpiryStaysPositive(t *testing.T) {
	a := newAuthenticator(t, `
credentials:
  usernames:
    u: {password: pw}
cookie: {name: c, key: k, expiry_days: 100000}
`)
	assert.Equal(t, time.Duration(config.MaxExpiryDays)*24*time.Hour, a.Lifetime())
	assert.Positive(t, a.Cookie("tok").MaxAge)

	token, _, err := a.Login("u", "pw")
	require.NoError(t, err)
	_, err = a.Verify(token)
	assert.NoError(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a := newAuthenticator(t, credentialYAML)
	token, _, err := a.Login("jsmith", "abc123")
	require.NoError(t, err)

	r := gin.New()
	r.Use(a.Middleware())
	handler := func(c *gin.Context) {
		claims, ok := FromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, claims.Username())
	}
	r.GET("/", handler)
	r.GET("/api/chat", handler)

	t.Run("page without cookie redirects", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("api without cookie is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(a.Cookie(token))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "jsmith", w.Body.String())
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, config.IsBcryptHash(hash))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	_, err = HashPassword("")
	assert.Error(t, err)
}
