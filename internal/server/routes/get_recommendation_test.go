package routes

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"

	"copra/internal/server/middleware"
	"copra/internal/storage"
)

// structValidator mirrors the validator the server installs on its echo
// instance, so handler validation runs the same way it does in production.
type structValidator struct {
	validator *validator.Validate
}

func (sv *structValidator) Validate(i any) error {
	return sv.validator.Struct(i)
}

func TestGetRecommendationRejectsInvalidParams(t *testing.T) {
	tooMany := "/recommendation?buyer=" + strings.Repeat("b&buyer=", 50) + "b"
	tooLongSeller := "/recommendation?buyer=b1&seller=" + strings.Repeat("s", 129)

	tests := []struct {
		name   string
		target string
	}{
		{"EmptyBuyerValue", "/recommendation?buyer="},
		{"TooManyBuyers", tooMany},
		{"SellerTooLong", tooLongSeller},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Validator = &structValidator{validator: validator.New()}
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			cc := &middleware.AppContext{
				Context: e.NewContext(req, rec),
				App:     &middleware.App{},
				Client:  "acme",
			}

			if err := GetRecommendationHandler(cc); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestDataUnavailableStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"MissingArtifact", fmt.Errorf("get rules: %w", storage.ErrNotFound), http.StatusNotFound},
		{"UpstreamFailure", errors.New("connection refused"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/recommendation", nil)
			rec := httptest.NewRecorder()

			if err := dataUnavailable(e.NewContext(req, rec), tt.err); err != nil {
				t.Fatalf("dataUnavailable returned error: %v", err)
			}
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
