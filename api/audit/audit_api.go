package audit

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inventify.GO/api"
)

func init() {
	api.RegisterModule(RegisterAuditRoutes)
}

func RegisterAuditRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/audit")

	// GET /api/audit/logs – the local forensic trail, newest first
	g.GET("/logs", func(c echo.Context) error {
		if deps.Audit == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "audit store not configured"})
		}
		logs, err := deps.Audit.List()
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"logs": logs})
	})

	// GET /api/audit/health – divergence counter between ledger and audit
	g.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"audit_failures": deps.Ledger.AuditFailures(),
		})
	})
}
