package stock

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"inventify.GO/api"
	"inventify.GO/core/cache"
	inventoryEntity "inventify.GO/model/entity/inventory"
	ledgerSvc "inventify.GO/service/ledger"
)

func init() {
	api.RegisterModule(RegisterStockRoutes)
}

// mutationResponse is what every stock mutation returns. AuditWarning is the
// secondary divergence condition: the ledger committed but the local audit
// write failed.
type mutationResponse struct {
	ItemID       string `json:"item_id"`
	ItemName     string `json:"item_name"`
	PreviousQty  int    `json:"previous_qty"`
	Quantity     int    `json:"quantity"`
	Delta        int    `json:"delta"`
	Direction    string `json:"direction,omitempty"`
	BatchID      string `json:"batch_id,omitempty"`
	NoOp         bool   `json:"no_op,omitempty"`
	AuditWarning string `json:"audit_warning,omitempty"`
}

func RegisterStockRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/stock")

	// POST /api/stock/:id/in – one unit in
	g.POST("/:id/in", func(c echo.Context) error {
		return applyDelta(c, deps, 1)
	})

	// POST /api/stock/:id/out – one unit out
	g.POST("/:id/out", func(c echo.Context) error {
		return applyDelta(c, deps, -1)
	})

	// POST /api/stock/:id/delta – signed delta in the body
	g.POST("/:id/delta", func(c echo.Context) error {
		var body struct {
			Delta int `json:"delta"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return applyDelta(c, deps, body.Delta)
	})

	// PUT /api/stock/:id/quantity – absolute quantity (typed value)
	g.PUT("/:id/quantity", func(c echo.Context) error {
		start := time.Now()
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		res, err := deps.Ledger.SetQuantity(c.Param("id"), body.Quantity)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		invalidate(res.ItemID)
		setDuration(c, start)
		return c.JSON(http.StatusOK, toResponse(res))
	})

	// GET /api/stock/:id/batches – receipt-ordered batch list
	g.GET("/:id/batches", func(c echo.Context) error {
		itemID := c.Param("id")
		key := "batches|" + itemID
		if v, ok := cache.GetInstance().Get(key); ok {
			if batches, isList := v.([]inventoryEntity.Batch); isList {
				return c.JSON(http.StatusOK, echo.Map{"batches": batches, "cached": true})
			}
		}

		batches, err := deps.Ledger.ListBatches(itemID)
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		cache.GetInstance().Set(key, batches, 30, []string{cache.ItemTag(itemID)})
		return c.JSON(http.StatusOK, echo.Map{"batches": batches})
	})
}

func applyDelta(c echo.Context, deps *api.Deps, delta int) error {
	start := time.Now()
	res, err := deps.Ledger.ApplyDelta(c.Param("id"), delta)
	if err != nil {
		return api.ErrorJSON(c, err)
	}
	invalidate(res.ItemID)
	setDuration(c, start)
	return c.JSON(http.StatusOK, toResponse(res))
}

func toResponse(res *ledgerSvc.Result) mutationResponse {
	out := mutationResponse{
		ItemID:      res.ItemID,
		ItemName:    res.ItemName,
		PreviousQty: res.PreviousQty,
		Quantity:    res.Quantity,
		Delta:       res.Delta,
		Direction:   res.Direction,
		BatchID:     res.BatchID,
		NoOp:        res.NoOp,
	}
	if res.AuditErr != nil {
		out.AuditWarning = "audit log write failed: " + res.AuditErr.Error()
	}
	return out
}

func invalidate(itemID string) {
	cache.GetInstance().DeleteByTag(cache.ItemTag(itemID))
	cache.GetInstance().DeleteByTag("items")
}

func setDuration(c echo.Context, start time.Time) {
	c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
}
