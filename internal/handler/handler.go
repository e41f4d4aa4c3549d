package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mkotlyarov/todo-items-service/internal/service"
)

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, repo Pinger, todoSvc service.TodoService) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		NewTodoHandler(todoSvc).Register(api)
	}
}
