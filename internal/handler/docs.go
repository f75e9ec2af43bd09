package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type routeDoc struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// RegisterDocs mounts GET /docs, a JSON catalogue of every route the engine serves.
func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		routes := lo.Map(r.Routes(), func(ri gin.RouteInfo, _ int) routeDoc {
			return routeDoc{Method: ri.Method, Path: ri.Path}
		})
		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path != routes[j].Path {
				return routes[i].Path < routes[j].Path
			}
			return routes[i].Method < routes[j].Method
		})
		c.JSON(http.StatusOK, gin.H{"routes": routes})
	})
}
