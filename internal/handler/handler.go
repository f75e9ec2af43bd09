package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/hockey-xg-preprocessor/internal/service"
)

// Register mounts all public routes on the given engine.
// pinger may be nil when the service runs without a shot sink.
func Register(r *gin.Engine, pinger Pinger, shotSvc service.ShotService) {
	h := NewHealthHandler(pinger)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewShotHandler(shotSvc).Register(api)
	}
}
