package middleware

import (
	"github.com/labstack/echo/v4"

	"copra/internal/config"
	"copra/internal/storage"
	"copra/internal/warehouse"
)

// App bundles the shared handles every handler needs: the warehouse for
// buyer directories, the artifact store for rules and order history, and
// the process configuration.
type App struct {
	Warehouse *warehouse.Client
	Artifacts *storage.ArtifactStore
	Config    *config.Config
}

// AppContext is the request context handed to handlers. Client is the
// canonical client name, set by AuthMiddleware after alias resolution.
type AppContext struct {
	echo.Context
	App    *App
	Client string
}

// AppContextMiddleware wraps every request in an AppContext carrying the
// shared application handles.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{Context: c, App: app})
		}
	}
}
