package api

import (
	"github.com/gin-gonic/gin"

	"qusim"
)

// NewRouter builds the HTTP router with all routes registered.
func NewRouter(selector *qusim.BackendSelector) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	h := NewHandlers(selector)
	RegisterRoutes(router, h)
	return router
}

// RegisterRoutes registers all service endpoints:
//
//	GET  /                   - service banner
//	GET  /health             - liveness probe
//	GET  /api/backends       - backend catalog
//	GET  /api/backends/:name - one backend's metadata
//	POST /api/execute        - parse and run a circuit
func RegisterRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/", h.HandleRoot)
	router.GET("/health", h.HandleHealth)

	apiGroup := router.Group("/api")
	apiGroup.GET("/backends", h.HandleListBackends)
	apiGroup.GET("/backends/:name", h.HandleGetBackend)
	apiGroup.POST("/execute", h.HandleExecute)
}
