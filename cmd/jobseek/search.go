package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"jobseek/internal/search"

	"github.com/spf13/cobra"
)

var searchReq = search.NewRequest()

var (
	searchMinSalary int
	searchMaxSalary int
	searchActive    string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Query the search index and print the result page as JSON",
	Args:  cobra.NoArgs,
	RunE:  runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&searchReq.Keyword, "keyword", "k", "", "match title, description or company")
	f.StringSliceVar(&searchReq.Skills, "skills", nil, "require any of these skills")
	f.StringVar(&searchReq.Location, "location", "", "location substring")
	f.IntVar(&searchMinSalary, "min-salary", 0, "lowest acceptable salary")
	f.IntVar(&searchMaxSalary, "max-salary", 0, "highest acceptable salary")
	f.StringVar(&searchReq.ExperienceLevel, "level", "", "Entry, Mid, Senior or Lead")
	f.StringVar(&searchActive, "active", "", "true or false")
	f.IntVar(&searchReq.Page, "page", searchReq.Page, "zero-based page")
	f.IntVar(&searchReq.Size, "size", searchReq.Size, "page size")
	f.StringVar(&searchReq.SortBy, "sort-by", searchReq.SortBy, "sort field")
	f.StringVar(&searchReq.SortOrder, "sort-order", searchReq.SortOrder, "asc or desc")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	if f.Changed("min-salary") {
		searchReq.MinSalary = &searchMinSalary
	}
	if f.Changed("max-salary") {
		searchReq.MaxSalary = &searchMaxSalary
	}
	if f.Changed("active") {
		active, err := strconv.ParseBool(searchActive)
		if err != nil {
			return fmt.Errorf("invalid --active %q: %w", searchActive, err)
		}
		searchReq.IsActive = &active
	}

	c, err := openContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	resp, err := c.Search.Search(cmd.Context(), searchReq)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
