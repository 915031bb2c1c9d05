package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moviehub/internal/config"
	"moviehub/internal/middleware"
	"moviehub/internal/modules/catalog"
	"moviehub/internal/modules/favorite"
	"moviehub/internal/modules/settings"
)

type routerDeps struct {
	catalog   *catalog.Handler
	favorites *favorite.Handler
	settings  *settings.Handler
	limiter   *middleware.RateLimiter
}

func newRouter(cfg *config.Config, deps routerDeps) *gin.Engine {
	if cfg.IsProduction() && !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ws := r.Group("/ws")
	{
		ws.GET("/favorites", deps.favorites.ServeWS)
		ws.GET("/favorites/:id", deps.favorites.ServeStatusWS)
		ws.GET("/favorites/:id/detail", deps.favorites.ServeDetailWS)
		ws.GET("/settings", deps.settings.ServeWS)
		ws.GET("/search", deps.catalog.ServeSearchWS)
	}

	v1 := r.Group("/api/v1")
	v1.Use(deps.limiter.Middleware())
	{
		deps.catalog.RegisterRoutes(v1)
		deps.favorites.RegisterRoutes(v1)
		deps.settings.RegisterRoutes(v1)
	}

	return r
}
