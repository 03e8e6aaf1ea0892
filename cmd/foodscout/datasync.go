package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/foodscout/internal/database"
	"github.com/at-ishikawa/foodscout/internal/datasync"
	"github.com/at-ishikawa/foodscout/internal/fooddb"
	"github.com/at-ishikawa/foodscout/schemas"
)

type migrateSchemaResponse struct {
	Status  string   `json:"status"`
	Applied []string `json:"applied"`
}

type importResponse struct {
	Status  string `json:"status"`
	DryRun  bool   `json:"dry_run"`
	New     int    `json:"new"`
	Skipped int    `json:"skipped"`
	Updated int    `json:"updated"`
}

type exportResponse struct {
	Status string       `json:"status"`
	Path   string       `json:"path"`
	Stats  fooddb.Stats `json:"db_stats"`
}

func newMigrateSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Apply pending MySQL schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fail(msgConfig, fmt.Errorf("load config > %w", err))
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fail(msgDatabase, fmt.Errorf("database.Open() > %w", err))
			}
			defer func() { _ = db.Close() }()

			applied, err := database.Migrate(cmd.Context(), db, schemas.Migrations)
			if err != nil {
				return fail(msgDatabase, fmt.Errorf("database.Migrate() > %w", err))
			}
			if applied == nil {
				applied = []string{}
			}
			return writeJSON(cmd.OutOrStdout(), migrateSchemaResponse{Status: statusOK, Applied: applied})
		},
	}
}

func newMigrateImportDBCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   "import-db",
		Short: "Import the food database into MySQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, foods, err := loadDatabase()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fail(msgDatabase, fmt.Errorf("database.Open() > %w", err))
			}
			defer func() { _ = db.Close() }()

			importer := datasync.NewImporter(fooddb.NewDBFoodRepository(db), cmd.ErrOrStderr())
			opts := datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := importer.ImportFoods(cmd.Context(), foods, opts)
			if err != nil {
				return fail(msgDatabase, fmt.Errorf("importer.ImportFoods() > %w", err))
			}

			response := importResponse{
				Status:  statusOK,
				DryRun:  opts.DryRun,
				New:     result.FoodsNew,
				Skipped: result.FoodsSkipped,
				Updated: result.FoodsUpdated,
			}
			return writeJSON(cmd.OutOrStdout(), response)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	return cmd
}

func newMigrateExportDBCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export-db",
		Short: "Export the MySQL foods table to a JSON food database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fail(msgConfig, fmt.Errorf("load config > %w", err))
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fail(msgDatabase, fmt.Errorf("database.Open() > %w", err))
			}
			defer func() { _ = db.Close() }()

			foods, err := datasync.NewExporter(fooddb.NewDBFoodRepository(db)).Export(cmd.Context())
			if err != nil {
				return fail(msgDatabase, fmt.Errorf("exporter.Export() > %w", err))
			}
			if err := fooddb.NewFileStore(outputPath).Save(foods); err != nil {
				return fail(msgStoreSave, fmt.Errorf("store.Save() > %w", err))
			}

			return writeJSON(cmd.OutOrStdout(), exportResponse{Status: statusOK, Path: outputPath, Stats: foods.Stats()})
		},
	}

	cmd.Flags().StringVar(&outputPath, "output", "food-db-export.json", "Path of the JSON food database to write")
	return cmd
}
