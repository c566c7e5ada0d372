package routes

import (
	"net/http"

	"github.com/dukerupert/gymsup/internal/handler"
	"github.com/dukerupert/gymsup/internal/router"
)

// RegisterSystemRoutes mounts health and metrics outside the API chain and
// answers unknown /api paths with a JSON 404.
func RegisterSystemRoutes(r *router.Router, deps SystemDeps) {
	health := deps.Health
	if health == nil {
		health = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			handler.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	}
	r.Mount("GET /health", health)

	if deps.Metrics != nil {
		r.Mount("GET /metrics", deps.Metrics)
	}

	r.NotFound(handler.NotFoundResponse)
}
