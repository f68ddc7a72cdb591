package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"inventify.GO/config"
)

func newMigrator() (*migrate.Migrate, error) {
	dsn := os.Getenv("MIGRATE_DSN")
	if dsn == "" {
		user := os.Getenv("MYSQL_USER")
		pass := os.Getenv("MYSQL_PASS")
		host := os.Getenv("MYSQL_HOST")
		port := config.GetEnv("MYSQL_PORT", "3306")
		db := os.Getenv("MYSQL_DB")
		dsn = fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s", user, pass, host, port, db)
	}
	src := config.GetEnv("MIGRATIONS_PATH", "file://migrations")
	return migrate.New(src, dsn)
}

var migrateUpCmd = &cobra.Command{
	Use:   "migrate:up",
	Short: "Apply all pending ledger DB migrations",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newMigrator()
		if err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied.")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "migrate:down",
	Short: "Roll back the most recent ledger DB migration",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newMigrator()
		if err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
		if err := m.Steps(-1); err != nil {
			fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Rolled back one migration.")
	},
}

func init() {
	rootCmd.AddCommand(migrateUpCmd)
	rootCmd.AddCommand(migrateDownCmd)
}
