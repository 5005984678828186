package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"copra/internal/server/middleware"
	"copra/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/recommendation", routes.GetRecommendationHandler, middleware.AuthMiddleware)
}
