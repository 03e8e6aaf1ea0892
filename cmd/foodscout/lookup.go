package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/foodscout/internal/lookup"
	"github.com/at-ishikawa/foodscout/internal/query"
)

func newLookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "lookup <query>",
		Short:   "Look up nutrition for foods",
		Example: `  foodscout lookup "200g rice, 150g chicken breast, 100g broccoli"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, db, err := loadDatabase()
			if err != nil {
				return err
			}

			resolver, closeResolver := newResolver(cfg.USDA)
			defer closeResolver()

			service := lookup.NewService(store, resolver)
			result, err := service.Lookup(cmd.Context(), db, query.Parse(strings.Join(args, " ")))
			if errors.Is(err, query.ErrEmptyQuery) {
				return err
			}
			if err != nil {
				return fail(msgStoreSave, fmt.Errorf("service.Lookup() > %w", err))
			}

			return render(cmd.OutOrStdout(), lookupResponse{Status: statusOK, Result: result}, func(w io.Writer) {
				writeLookupTable(w, result)
			})
		},
	}
}
