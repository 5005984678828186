package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"copra/internal/server/middleware"
	"copra/internal/storage"
	"copra/pkg/logger"
	"copra/pkg/recommend"
)

// GetRecommendationHandler serves GET /recommendation. It loads the
// client's rules, order history and buyer directory once, resolves the
// buyer scope (explicit buyer params or the directory head), and runs the
// recommendation pipeline per buyer. Upstream load failures abort the
// whole request; an empty result is a valid 200.
func GetRecommendationHandler(c echo.Context) error {
	type getRecommendationParams struct {
		Buyers []string `query:"buyer" validate:"max=50,dive,required"`
		Seller string   `query:"seller" validate:"omitempty,max=128"`
	}

	params := new(getRecommendationParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	cc := c.(*middleware.AppContext)
	client := cc.Client
	ctx := c.Request().Context()

	logger.Info("Recommendation request", "client", client, "buyers", params.Buyers, "seller", params.Seller)

	rules, err := cc.App.Artifacts.GetRules(ctx, client)
	if err != nil {
		logger.Error("Failed to load rules", "client", client, "err", err)
		return dataUnavailable(c, err)
	}
	orders, err := cc.App.Artifacts.GetOrders(ctx, client)
	if err != nil {
		logger.Error("Failed to load orders", "client", client, "err", err)
		return dataUnavailable(c, err)
	}
	buyers, err := cc.App.Warehouse.Buyers(ctx, client)
	if err != nil {
		logger.Error("Failed to load buyer directory", "client", client, "err", err)
		return dataUnavailable(c, err)
	}

	dataset := recommend.NewDataset(orders, rules, buyers, cc.App.Config.TopN)
	scope := dataset.ResolveBuyers(params.Buyers)

	recommendations := dataset.ForBuyers(scope)
	logger.Info("Recommendation response", "client", client, "buyers", len(scope), "recommendations", len(recommendations))
	return c.JSON(http.StatusOK, recommendations)
}

// dataUnavailable maps an upstream load failure to the response status:
// a missing artifact means the client was never trained (404), anything
// else is an upstream failure (502). Both are distinct from auth failures
// and from a valid empty result.
func dataUnavailable(c echo.Context, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No trained data for client"})
	}
	return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to load data"})
}
