// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/exoplanet-gateway/internal/handler"
	"github.com/deppfellow/exoplanet-gateway/internal/middleware"
	"github.com/deppfellow/exoplanet-gateway/internal/server"
)

// NewRouter builds the Echo instance with every middleware and route
// registered.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Debug = s.Config.Primary.Env != "production"

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id must exist before the logger is built,
	// and the transaction before trace ids can be attached to it.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerExoplanetRoutes(api, h)

	return router
}

func registerExoplanetRoutes(api *echo.Group, h *handler.Handlers) {
	api.GET("/exoplanets", handler.Handle(h.Exoplanet.Handler, h.Exoplanet.ListExoplanets, http.StatusOK))
	api.GET("/planetary-system/:star_name", handler.Handle(h.Exoplanet.Handler, h.Exoplanet.GetPlanetarySystem, http.StatusOK))
}
