package main

import (
	"fmt"

	"jobseek/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample postings into an empty primary store",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	c, err := openContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	runner := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}
	if err := runner.Run(cmd.Context(), c.DB); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "seed complete")
	return nil
}
