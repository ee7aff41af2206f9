package config

import (
	"net/http"
	"os"
	"strings"
	"time"
)

// Cookies carries game tickets for browser clients, one cookie per game.
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func NewCookies() *Cookies {
	cookies := &Cookies{SameSite: http.SameSiteLaxMode}

	if domain, ok := os.LookupEnv("COOKIES_DOMAIN"); ok {
		cookies.Domain = domain
	}
	if secure, ok := os.LookupEnv("COOKIES_SECURE"); ok {
		cookies.Secure = secure != "0"
	}
	if sameSite, ok := os.LookupEnv("COOKIES_SAMESITE"); ok {
		switch strings.ToUpper(sameSite) {
		case "DEFAULT":
			cookies.SameSite = http.SameSiteDefaultMode
		case "LAX":
			cookies.SameSite = http.SameSiteLaxMode
		case "STRICT":
			cookies.SameSite = http.SameSiteStrictMode
		case "NONE":
			cookies.SameSite = http.SameSiteNoneMode
		}
	}

	return cookies
}

func ticketCookie(slug string) string {
	return "ticket-" + slug
}

func (c *Cookies) SetTicket(w http.ResponseWriter, slug, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     ticketCookie(slug),
		Path:     "/",
		Value:    token,
		Expires:  expires,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// Ticket finds the ticket for slug, preferring a bearer token over the
// cookie.
func (c *Cookies) Ticket(r *http.Request, slug string) (string, bool) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		token, ok := strings.CutPrefix(auth, "Bearer ")
		return token, ok && token != ""
	}
	cookie, err := r.Cookie(ticketCookie(slug))
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
