package history

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"inventify.GO/api"
)

func init() {
	api.RegisterModule(RegisterHistoryRoutes)
}

func RegisterHistoryRoutes(apiGroup *echo.Group, deps *api.Deps) {
	// GET /api/history?item_id=&from=&to= – transaction records, newest first
	apiGroup.GET("/history", func(c echo.Context) error {
		var from, to time.Time
		if v := c.QueryParam("from"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "from: expected RFC3339 timestamp"})
			}
			from = t
		}
		if v := c.QueryParam("to"); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "to: expected RFC3339 timestamp"})
			}
			to = t
		}

		records, err := deps.Ledger.ListTransactions(c.QueryParam("item_id"), from, to)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"transactions": records})
	})
}
