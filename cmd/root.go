package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "spreadlab",
	Short: "Mean-reversion research service for price spreads",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
