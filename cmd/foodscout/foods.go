package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search the local database by name or localized name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, db, err := loadDatabase()
			if err != nil {
				return err
			}

			term := strings.Join(args, " ")
			matches := db.Matches(term)
			results := make([]foodView, 0, len(matches))
			for _, entry := range matches {
				view := newFoodView(entry)
				view.Per100g = true
				results = append(results, view)
			}

			response := searchResponse{
				Status:  statusOK,
				Query:   term,
				Count:   len(results),
				Results: results,
				Stats:   db.Stats(),
			}
			return render(cmd.OutOrStdout(), response, func(w io.Writer) {
				writeFoodTable(w, results)
			})
		},
	}
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all foods in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, db, err := loadDatabase()
			if err != nil {
				return err
			}

			entries := db.Entries()
			foods := make([]foodView, 0, len(entries))
			for _, entry := range entries {
				foods = append(foods, newFoodView(entry))
			}

			response := listResponse{
				Status: statusOK,
				Count:  len(foods),
				Foods:  foods,
				Stats:  db.Stats(),
			}
			return render(cmd.OutOrStdout(), response, func(w io.Writer) {
				writeFoodTable(w, foods)
			})
		},
	}
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, db, err := loadDatabase()
			if err != nil {
				return err
			}

			stats := db.Stats()
			return render(cmd.OutOrStdout(), statsResponse{Status: statusOK, Stats: stats}, func(w io.Writer) {
				writeStatsTable(w, stats)
			})
		},
	}
}
