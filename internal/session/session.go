package session

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session cookie issued on signup/login.
const CookieName = "session"

// User is the identity carried by a session token.
type User struct {
	ID    int64
	Email string
	Name  string
}

// Manager issues and verifies session tokens and manages the session cookie.
// Tokens are HS256 JWTs carrying {sub, email, name, exp}.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, secure: secure}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Create issues a signed token for the identity.
func (m *Manager) Create(u User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   strconv.FormatInt(u.ID, 10),
		"email": u.Email,
		"name":  u.Name,
		"exp":   time.Now().Add(m.ttl).Unix(),
	})
	return token.SignedString(m.secret)
}

// Verify parses the token and returns the identity, or nil when the token is
// missing, malformed, or expired. Callers cannot distinguish the failure
// modes; every failure is the same nil.
func (m *Manager) Verify(tokenStr string) *User {
	if tokenStr == "" {
		return nil
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return &User{ID: id, Email: email, Name: name}
}

// FromRequest resolves the identity from the request's session cookie.
func (m *Manager) FromRequest(r *http.Request) *User {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	return m.Verify(c.Value)
}

// SetCookie attaches the session cookie to the response.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
