// Package datasync provides import/export orchestration between the JSON food database and MySQL.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/foodscout/internal/fooddb"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	FoodsNew     int
	FoodsSkipped int
	FoodsUpdated int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer reads the JSON food database and writes to DB.
type Importer struct {
	foodRepo fooddb.FoodRepository
	writer   io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(foodRepo fooddb.FoodRepository, writer io.Writer) *Importer {
	return &Importer{
		foodRepo: foodRepo,
		writer:   writer,
	}
}

// ImportFoods mirrors every entry of db into the foods table, in key order.
func (imp *Importer) ImportFoods(ctx context.Context, db *fooddb.Database, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult

	for _, entry := range db.Entries() {
		existing, err := imp.foodRepo.FindByKey(ctx, entry.Key)
		if err != nil {
			return nil, fmt.Errorf("FindByKey(%s) > %w", entry.Key, err)
		}

		record := fooddb.NewFoodRecord(entry)
		if existing != nil {
			if !opts.UpdateExisting || existing.Entry() == entry {
				fmt.Fprintf(imp.writer, "  [SKIP]  %q\n", entry.Key)
				result.FoodsSkipped++
				continue
			}
			if !opts.DryRun {
				if err := imp.foodRepo.Upsert(ctx, record); err != nil {
					return nil, fmt.Errorf("Upsert() > %w", err)
				}
			}
			fmt.Fprintf(imp.writer, "  [UPDATE]  %q\n", entry.Key)
			result.FoodsUpdated++
			continue
		}

		if !opts.DryRun {
			if err := imp.foodRepo.Upsert(ctx, record); err != nil {
				return nil, fmt.Errorf("Upsert() > %w", err)
			}
		}
		fmt.Fprintf(imp.writer, "  [NEW]  %q (%s)\n", entry.Key, entry.Source)
		result.FoodsNew++
	}

	return &result, nil
}

// Exporter reads DB and returns domain structs.
type Exporter struct {
	foodRepo fooddb.FoodRepository
}

// NewExporter creates a new Exporter.
func NewExporter(foodRepo fooddb.FoodRepository) *Exporter {
	return &Exporter{
		foodRepo: foodRepo,
	}
}

// Export reads every mirrored food into a new database.
func (e *Exporter) Export(ctx context.Context) (*fooddb.Database, error) {
	records, err := e.foodRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("foodRepo.FindAll() > %w", err)
	}

	db := fooddb.NewDatabase()
	for _, record := range records {
		db.Put(record.Entry())
	}
	return db, nil
}
