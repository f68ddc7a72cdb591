package report

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inventify.GO/api"
)

func init() {
	api.RegisterModule(RegisterReportRoutes)
}

func RegisterReportRoutes(apiGroup *echo.Group, deps *api.Deps) {
	// GET /api/report/low-stock – items at or below their threshold.
	// Data only; rendering (PDF/CSV) belongs to the excluded reporting layer.
	apiGroup.GET("/report/low-stock", func(c echo.Context) error {
		items, err := deps.Items.LowStock()
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
	})
}
