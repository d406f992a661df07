package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

const corsMaxAge = 300 // seconds

// HTTPHandler returns the router wrapped for cross-origin browser clients.
// Without configured origins only same-origin requests get CORS headers.
func (h *Handler) HTTPHandler() http.Handler {
	router := h.InitRoutes()
	origins := normalizeOrigins(h.cfg.AllowedOrigins)
	if len(origins) == 0 {
		return router
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})(router)
}

// normalizeOrigins drops blanks and trailing slashes; browsers never send them.
func normalizeOrigins(in []string) []string {
	var out []string
	for _, o := range in {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	return out
}
