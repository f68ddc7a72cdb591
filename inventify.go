//go:build !cli
// +build !cli

package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"inventify.GO/api"
	_ "inventify.GO/api/audit"
	_ "inventify.GO/api/graphql"
	_ "inventify.GO/api/history"
	_ "inventify.GO/api/item"
	_ "inventify.GO/api/report"
	_ "inventify.GO/api/stock"
	"inventify.GO/config"
	"inventify.GO/cron/jobs"
	inventoryEntity "inventify.GO/model/entity/inventory"
	ledgerEntity "inventify.GO/model/entity/ledger"
	auditSvc "inventify.GO/service/audit"
	inventorySvc "inventify.GO/service/inventory"
	ledgerSvc "inventify.GO/service/ledger"
	"inventify.GO/service/search"
)

func getAuthMiddleware() echo.MiddlewareFunc {
	skipPaths := config.GetAuthSkipperPaths()
	skipper := func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
	authType := os.Getenv("AUTH_TYPE")
	switch authType {
	case "key":
		apiKey := os.Getenv("API_KEY")
		return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			Validator: func(key string, c echo.Context) (bool, error) {
				return key == apiKey, nil
			},
			Skipper: skipper,
		})
	default:
		return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
			Validator: func(username, password string, c echo.Context) (bool, error) {
				return username == os.Getenv("API_USER") && password == os.Getenv("API_PASS"), nil
			},
			Skipper: skipper,
		})
	}
}

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	// Initialize Redis
	config.InitRedis()
	redisStatus := "Redis not configured or not reachable, caching disabled."
	if config.RedisClient != nil {
		err := config.RedisClient.Ping(config.RedisCtx()).Err()
		if err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil // Disable Redis if not reachable
			redisStatus = "Redis configured but not reachable, caching disabled."
		}
	}
	log.Println(redisStatus)

	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("failed to connect to ledger DB: %v", err)
	}

	// Check DB connection
	sqldb, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get DB instance: %v", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("ledger database connection failed: %v", err)
	}
	log.Println("Ledger database connection successful.")

	if os.Getenv("AUTO_MIGRATE") == "true" {
		err := db.AutoMigrate(
			&inventoryEntity.InventoryItem{},
			&inventoryEntity.Batch{},
			&ledgerEntity.TransactionRecord{},
		)
		if err != nil {
			log.Fatalf("auto-migrate failed: %v", err)
		}
		log.Println("Ledger schema auto-migrated.")
	}

	// The local audit store is independent: a failure here degrades the
	// audit trail, it never takes the ledger down.
	var recorder *auditSvc.Recorder
	localDB, err := config.NewLocalDB()
	if err != nil {
		log.Printf("local audit DB unavailable, audit trail disabled: %v", err)
	} else {
		recorder, err = auditSvc.NewRecorder(localDB)
		if err != nil {
			log.Printf("audit recorder init failed, audit trail disabled: %v", err)
			recorder = nil
		} else {
			log.Println("Local audit database ready.")
		}
	}

	var sink ledgerSvc.AuditSink
	if recorder != nil {
		sink = recorder
	}
	stockLedger := ledgerSvc.NewStockLedger(db, sink)
	if config.AppConfig.LedgerRetries > 0 {
		stockLedger.MaxRetries = config.AppConfig.LedgerRetries
	}
	items, err := inventorySvc.NewItemService(db, sink)
	if err != nil {
		log.Fatalf("item service: %v", err)
	}
	if idx := search.GetIndexer(); idx.Enabled() {
		items.Index = idx
		log.Println("Search indexing enabled.")
	}
	jobs.Init(db)

	deps := &api.Deps{
		DB:     db,
		Ledger: stockLedger,
		Items:  items,
		Audit:  recorder,
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, echo.Map{"status": "ok"})
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(getAuthMiddleware())

	api.ApplyModules(apiGroup, deps)
	api.ApplyRoutes(e, deps)

	fig := figure.NewFigure("Inventify", "slant", true)
	fig.Print()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
