package fooddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/fooddb/mock_repository.go -package=mock_fooddb

// FoodRecord is a food entry mirrored into the foods table.
type FoodRecord struct {
	Key           string    `db:"food_key"`
	LocalizedName string    `db:"localized_name"`
	Calories      float64   `db:"calories"`
	Protein       float64   `db:"protein"`
	Carbs         float64   `db:"carbs"`
	Fat           float64   `db:"fat"`
	Source        string    `db:"source"`
	AddedAt       string    `db:"added_at"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// NewFoodRecord converts an entry into its table form.
func NewFoodRecord(entry FoodEntry) *FoodRecord {
	return &FoodRecord{
		Key:           entry.Key,
		LocalizedName: entry.LocalizedName,
		Calories:      entry.Calories,
		Protein:       entry.Protein,
		Carbs:         entry.Carbs,
		Fat:           entry.Fat,
		Source:        string(entry.Source),
		AddedAt:       entry.AddedAt,
	}
}

// Entry converts the record back into a food entry.
func (r FoodRecord) Entry() FoodEntry {
	return FoodEntry{
		Key:           r.Key,
		LocalizedName: r.LocalizedName,
		Nutrients: Nutrients{
			Calories: r.Calories,
			Protein:  r.Protein,
			Carbs:    r.Carbs,
			Fat:      r.Fat,
		},
		Source:  Source(r.Source),
		AddedAt: r.AddedAt,
	}
}

// FoodRepository defines operations on the mirrored foods table.
type FoodRepository interface {
	FindAll(ctx context.Context) ([]FoodRecord, error)
	FindByKey(ctx context.Context, key string) (*FoodRecord, error)
	Upsert(ctx context.Context, record *FoodRecord) error
}

// DBFoodRepository implements FoodRepository using MySQL.
type DBFoodRepository struct {
	db *sqlx.DB
}

// NewDBFoodRepository creates a new DBFoodRepository.
func NewDBFoodRepository(db *sqlx.DB) *DBFoodRepository {
	return &DBFoodRepository{db: db}
}

// FindAll returns all mirrored foods ordered by key.
func (r *DBFoodRepository) FindAll(ctx context.Context) ([]FoodRecord, error) {
	var records []FoodRecord
	if err := r.db.SelectContext(ctx, &records, "SELECT * FROM foods ORDER BY food_key"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(foods) > %w", err)
	}
	return records, nil
}

// FindByKey returns a mirrored food by key, or nil if not found.
func (r *DBFoodRepository) FindByKey(ctx context.Context, key string) (*FoodRecord, error) {
	var record FoodRecord
	err := r.db.GetContext(ctx, &record, "SELECT * FROM foods WHERE food_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(food) > %w", err)
	}
	return &record, nil
}

// Upsert inserts or updates a mirrored food.
func (r *DBFoodRepository) Upsert(ctx context.Context, record *FoodRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO foods (food_key, localized_name, calories, protein, carbs, fat, source, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE localized_name = VALUES(localized_name), calories = VALUES(calories), protein = VALUES(protein),
		carbs = VALUES(carbs), fat = VALUES(fat), source = VALUES(source), added_at = VALUES(added_at)`,
		record.Key, record.LocalizedName, record.Calories, record.Protein, record.Carbs, record.Fat, record.Source, record.AddedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert food) > %w", err)
	}
	return nil
}
