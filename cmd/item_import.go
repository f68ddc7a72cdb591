package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inventify.GO/config"
	auditSvc "inventify.GO/service/audit"
	"inventify.GO/service/importer"
	inventorySvc "inventify.GO/service/inventory"
)

var importFile string

var itemImportCmd = &cobra.Command{
	Use:   "item:import",
	Short: "Import items from a CSV or JSON file",
	Run: func(cmd *cobra.Command, args []string) {
		if importFile == "" {
			fmt.Fprintln(os.Stderr, "item:import: --file is required")
			os.Exit(1)
		}

		db, err := config.NewDB()
		if err != nil {
			fmt.Fprintf(os.Stderr, "db: %v\n", err)
			os.Exit(1)
		}
		localDB, err := config.NewLocalDB()
		if err != nil {
			fmt.Fprintf(os.Stderr, "local db: %v\n", err)
			os.Exit(1)
		}
		recorder, err := auditSvc.NewRecorder(localDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "audit: %v\n", err)
			os.Exit(1)
		}
		svc, err := inventorySvc.NewItemService(db, recorder)
		if err != nil {
			fmt.Fprintf(os.Stderr, "items: %v\n", err)
			os.Exit(1)
		}

		f, err := os.Open(importFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		var res *importer.ImportResult
		if strings.HasSuffix(strings.ToLower(importFile), ".json") {
			var docs []map[string]interface{}
			if err := json.NewDecoder(f).Decode(&docs); err != nil {
				fmt.Fprintf(os.Stderr, "decode json: %v\n", err)
				os.Exit(1)
			}
			res = importer.ImportDocuments(svc, docs)
		} else {
			res, err = importer.ImportCSV(svc, f)
			if err != nil {
				fmt.Fprintf(os.Stderr, "import csv: %v\n", err)
				os.Exit(1)
			}
		}

		fmt.Printf("Imported %d, skipped %d\n", res.Imported, res.Skipped)
		for _, w := range res.Warnings {
			fmt.Println("  warning:", w)
		}
	},
}

func init() {
	itemImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV or JSON file to import")
	rootCmd.AddCommand(itemImportCmd)
}
