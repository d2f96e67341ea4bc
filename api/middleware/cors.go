package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000",            // local storefront dev
	"https://zenskecarape.rs",          // production storefront
	"https://www.zenskecarape.rs",      // www alias
	"https://zenske-carape.vercel.app", // preview deployments
}

// CORS returns middleware that applies the storefront's allowed origin policy.
func CORS(extraOrigins []string) func(http.Handler) http.Handler {
	origins := defaultCORSOrigins
	if len(extraOrigins) > 0 {
		origins = append(append([]string{}, defaultCORSOrigins...), extraOrigins...)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With", "X-Cart-Token"},
		ExposedHeaders:   []string{"X-Cart-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
