package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "inventify",
	Short: "Inventify stock-ledger CLI",
	Run: func(cmd *cobra.Command, args []string) {
		fig := figure.NewFigure("Inventify", "slant", true)
		fig.Print()
		fmt.Println()
		_ = cmd.Help()
	},
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
