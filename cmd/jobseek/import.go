package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a CSV file of job postings into the primary store",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	c, err := openContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	res := c.Import.ImportCSV(cmd.Context(), f)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return err
	}
	if res.SuccessCount == 0 && res.ErrorCount > 0 {
		return fmt.Errorf("import failed: %d errors", res.ErrorCount)
	}
	return nil
}
