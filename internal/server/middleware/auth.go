package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware authenticates a request against the per-client static
// token table. The Client header may carry a marketplace mnemonic, which is
// resolved to its canonical client name before the token check; the
// canonical name is stored on the AppContext for handlers. Missing
// credentials are rejected with 401, unknown clients or wrong tokens with
// 403, both before any pipeline work runs.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cc := c.(*AppContext)

		mnemonic := c.Request().Header.Get("Client")
		authHeader := c.Request().Header.Get("Authorization")
		if mnemonic == "" || authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Client and token are required"})
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		client := cc.App.Config.ResolveClient(mnemonic)
		expected, known := cc.App.Config.TokenFor(client)
		if !known || subtle.ConstantTimeCompare([]byte(expected), []byte(token)) != 1 {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Invalid client or token"})
		}

		cc.Client = client
		return next(cc)
	}
}
