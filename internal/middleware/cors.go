package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows the listed origins, or every origin when none are listed.
func Cors(origins ...string) Middleware {
	options := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}
	if len(origins) == 0 {
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	} else {
		options.AllowedOrigins = origins
	}
	return cors.New(options).Handler
}
