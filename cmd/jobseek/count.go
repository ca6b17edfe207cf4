package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Compare document counts in the primary store and the search index",
	Args:  cobra.NoArgs,
	RunE:  runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	c, err := openContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	st, err := c.Stats.Count(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "primary store: %d\n", st.PrimaryStore)
	fmt.Fprintf(out, "search index:  %d\n", st.SearchIndex)
	fmt.Fprintf(out, "drift:         %d\n", st.Drift)
	return nil
}
