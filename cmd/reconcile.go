package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inventify.GO/config"
	"inventify.GO/service/reconcile"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Check the quantity-vs-batch-sum invariant across all items",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Fprintf(os.Stderr, "db: %v\n", err)
			os.Exit(1)
		}
		drifts, err := reconcile.Check(db)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reconcile: %v\n", err)
			os.Exit(1)
		}
		if len(drifts) == 0 {
			fmt.Println("All items consistent.")
			return
		}
		for _, d := range drifts {
			fmt.Printf("DRIFT %s (%s): quantity=%d batch_sum=%d\n", d.ItemID, d.Name, d.Quantity, d.BatchSum)
		}
		os.Exit(2)
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
