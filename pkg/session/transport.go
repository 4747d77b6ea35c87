package session

import (
	"net/http"
	"time"
)

// Transport carries session tokens between client and server.
type Transport interface {
	// GetToken extracts the token from the request; ErrNoToken when absent.
	GetToken(r *http.Request) (string, error)

	// SetToken attaches the token to the response.
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken removes the token from the client.
	ClearToken(w http.ResponseWriter) error
}

// CookieTransport carries the token in an HttpOnly cookie.
type CookieTransport struct {
	Name   string
	Secure bool
}

// NewCookieTransport creates a cookie transport with the given cookie name.
func NewCookieTransport(name string, secure bool) *CookieTransport {
	if name == "" {
		name = "cafehub_session"
	}
	return &CookieTransport{Name: name, Secure: secure}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	c, err := r.Cookie(t.Name)
	if err != nil || c.Value == "" {
		return "", ErrNoToken
	}
	return c.Value, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
