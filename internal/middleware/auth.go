package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/receiptsweeper/internal/config"
)

// RequireTicket rejects requests that do not carry a valid ticket for the
// game named by the {slug} path value.
func RequireTicket(log logrus.FieldLogger, cookies *config.Cookies, tickets *config.JWT) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := r.PathValue("slug")
			token, ok := cookies.Ticket(r, slug)
			if !ok {
				http.Error(w, config.ErrBadTicket.Error(), http.StatusUnauthorized)
				return
			}
			if err := tickets.Verify(token, slug); err != nil {
				log.WithFields(logrus.Fields{
					"slug":  slug,
					"error": err,
				}).Debug("rejected ticket")
				http.Error(w, config.ErrBadTicket.Error(), http.StatusUnauthorized)
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}
