package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"datachat/apperr"
	"datachat/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	ContextKey = "auth_claims"

	// a cookie with expiry_days 0 lives for the browser session, its token for at most a day
	sessionTokenLifetime = 24 * time.Hour
)

const badCredentials = "Username/password is incorrect"

// Claims is the payload of the signed session cookie.
type Claims struct {
	Name      string `json:"name"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (c *Claims) Username() string {
	return c.Subject
}

// Authenticator checks credentials against the credential file and issues session cookies.
type Authenticator struct {
	users  map[string]config.UserRecord
	cookie config.CookieConfig
	secure bool
	now    func() time.Time
}

func New(af *config.AuthFile, secureCookie bool) *Authenticator {
	return &Authenticator{
		users:  af.Credentials.Usernames,
		cookie: af.Cookie,
		secure: secureCookie,
		now:    time.Now,
	}
}

// Lifetime is how long a login stays valid.
func (a *Authenticator) Lifetime() time.Duration {
	if a.cookie.ExpiryDays <= 0 {
		return sessionTokenLifetime
	}
	return time.Duration(a.cookie.ExpiryDays * float64(24*time.Hour))
}

// Login verifies the password and returns a signed token for a fresh session.
func (a *Authenticator) Login(username, password string) (string, *Claims, error) {
	username = strings.TrimSpace(username)
	user, ok := a.users[username]
	if !ok || password == "" {
		return "", nil, apperr.Unauthorized(badCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized(badCredentials)
	}

	now := a.now()
	claims := &Claims{
		Name:      user.Name,
		SessionID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.Lifetime())),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.cookie.Key))
	if err != nil {
		return "", nil, apperr.Wrap(err, apperr.CodeInternal, "failed to sign session token")
	}
	return token, claims, nil
}

// Verify parses a session token and checks its signature, expiry and user.
func (a *Authenticator) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, apperr.Unauthorized("Missing session")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(a.cookie.Key), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthorized("Session expired")
		}
		return nil, apperr.Unauthorized("Invalid session")
	}
	if _, ok := a.users[claims.Subject]; !ok || claims.SessionID == "" {
		return nil, apperr.Unauthorized("Invalid session")
	}
	return claims, nil
}

// Cookie wraps token in the session cookie.
func (a *Authenticator) Cookie(token string) *http.Cookie {
	c := &http.Cookie{
		Name:     a.cookie.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if a.cookie.ExpiryDays > 0 {
		c.MaxAge = int(a.Lifetime().Seconds())
	}
	return c
}

// ClearCookie removes the session cookie from the browser.
func (a *Authenticator) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     a.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Token extracts the session token from the cookie or a bearer header.
func (a *Authenticator) Token(r *http.Request) string {
	if c, err := r.Cookie(a.cookie.Name); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Middleware rejects unauthenticated requests. API routes get a 401 JSON body,
// page routes are redirected to the login form.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.Verify(a.Token(c.Request))
		if err != nil {
			if IsAPIRequest(c.Request) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": err.Error(),
					"code":  apperr.Code(err),
				})
				return
			}
			http.SetCookie(c.Writer, a.ClearCookie())
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set(ContextKey, claims)
		c.Next()
	}
}

func IsAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// FromContext returns the claims stored by Middleware.
func FromContext(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

// HashPassword returns the bcrypt hash to paste into the credential file.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
