package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS creates the CORS middleware for the read and append API.
// Only GET and POST are exposed; the request id header is readable by browsers so client
// errors can be matched to server logs.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
