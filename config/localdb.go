package config

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewLocalDB opens the device-local audit database. It is a separate store
// with its own lifecycle and is never coordinated with the ledger DB.
func NewLocalDB() (*gorm.DB, error) {
	path := GetEnv("AUDIT_DB_PATH", "inventify_audit.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	return db, nil
}
