package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"copra/internal/config"
)

func authTestApp() *App {
	return &App{
		Config: &config.Config{
			Tokens:  map[string]string{"CARDEAL": "secret-token"},
			Aliases: map[string]string{"cardealevoce": "cardeal"},
		},
	}
}

func performAuth(t *testing.T, clientHeader, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/recommendation", nil)
	if clientHeader != "" {
		req.Header.Set("Client", clientHeader)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	cc := &AppContext{Context: e.NewContext(req, rec), App: authTestApp()}

	var resolved string
	handler := AuthMiddleware(func(c echo.Context) error {
		resolved = c.(*AppContext).Client
		return c.String(http.StatusOK, "OK")
	})
	if err := handler(cc); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, resolved
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		client     string
		auth       string
		wantStatus int
		wantClient string
	}{
		{"ValidToken", "cardeal", "Bearer secret-token", http.StatusOK, "cardeal"},
		{"ValidTokenViaAlias", "cardealevoce", "Bearer secret-token", http.StatusOK, "cardeal"},
		{"MissingClient", "", "Bearer secret-token", http.StatusUnauthorized, ""},
		{"MissingToken", "cardeal", "", http.StatusUnauthorized, ""},
		{"NotBearer", "cardeal", "Basic secret-token", http.StatusUnauthorized, ""},
		{"WrongToken", "cardeal", "Bearer wrong", http.StatusForbidden, ""},
		{"UnknownClient", "nobody", "Bearer secret-token", http.StatusForbidden, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, resolved := performAuth(t, tc.client, tc.auth)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if resolved != tc.wantClient {
				t.Fatalf("resolved client = %q, want %q", resolved, tc.wantClient)
			}
		})
	}
}
