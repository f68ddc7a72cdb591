package config

import (
	"os"
	"strconv"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName         string
	Port            string
	Env             string
	Debug           bool
	DefaultMinStock int
	LedgerRetries   int
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		minStock := 5
		if v, err := strconv.Atoi(os.Getenv("DEFAULT_MIN_STOCK")); err == nil && v >= 0 {
			minStock = v
		}
		retries := 5
		if v, err := strconv.Atoi(os.Getenv("LEDGER_RETRIES")); err == nil && v > 0 {
			retries = v
		}
		AppConfig = &Config{
			AppName:         GetEnv("APP_NAME", "inventify"),
			Port:            os.Getenv("PORT"),
			Env:             os.Getenv("APP_ENV"),
			Debug:           os.Getenv("DEBUG") == "true",
			DefaultMinStock: minStock,
			LedgerRetries:   retries,
		}
	})
}
