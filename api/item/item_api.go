package item

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inventify.GO/api"
	"inventify.GO/core/cache"
	inventoryEntity "inventify.GO/model/entity/inventory"
	"inventify.GO/service/importer"
)

func init() {
	api.RegisterModule(RegisterItemRoutes)
}

func RegisterItemRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/items")

	// GET /api/items – full item list (cached snapshot)
	g.GET("", func(c echo.Context) error {
		if v, ok := cache.GetInstance().Get("items|all"); ok {
			if items, isList := v.([]inventoryEntity.InventoryItem); isList {
				return c.JSON(http.StatusOK, echo.Map{"items": items, "cached": true})
			}
		}
		items, err := deps.Items.List()
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		cache.GetInstance().Set("items|all", items, 30, []string{"items"})
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	})

	// GET /api/items/:id
	g.GET("/:id", func(c echo.Context) error {
		item, err := deps.Items.Get(c.Param("id"))
		if err != nil {
			return api.ErrorJSON(c, err)
		}
		return c.JSON(http.StatusOK, item)
	})

	// POST /api/items – create with initial quantity/batch
	g.POST("", func(c echo.Context) error {
		var doc map[string]interface{}
		if err := c.Bind(&doc); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		item, err := importer.DecodeItem(doc)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := deps.Items.Create(item); err != nil {
			return api.ErrorJSON(c, err)
		}
		cache.GetInstance().DeleteByTag("items")
		return c.JSON(http.StatusCreated, item)
	})

	// PUT /api/items/:id – attribute edit (quantity is ignored here)
	g.PUT("/:id", func(c echo.Context) error {
		var doc map[string]interface{}
		if err := c.Bind(&doc); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		item, err := importer.DecodeItem(doc)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		item.ID = c.Param("id")
		if err := deps.Items.Update(item); err != nil {
			return api.ErrorJSON(c, err)
		}
		cache.GetInstance().DeleteByTag("items")
		cache.GetInstance().DeleteByTag(cache.ItemTag(item.ID))
		return c.JSON(http.StatusOK, item)
	})

	// DELETE /api/items/:id – item goes away, batches stay as history
	g.DELETE("/:id", func(c echo.Context) error {
		id := c.Param("id")
		if err := deps.Items.Delete(id); err != nil {
			return api.ErrorJSON(c, err)
		}
		cache.GetInstance().DeleteByTag("items")
		cache.GetInstance().DeleteByTag(cache.ItemTag(id))
		return c.JSON(http.StatusOK, echo.Map{"deleted": id})
	})

	// POST /api/items/import – bulk loose-document import
	g.POST("/import", func(c echo.Context) error {
		var body struct {
			Items []map[string]interface{} `json:"items"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items array is required and must not be empty"})
		}
		res := importer.ImportDocuments(deps.Items, body.Items)
		cache.GetInstance().DeleteByTag("items")
		return c.JSON(http.StatusOK, res)
	})
}
