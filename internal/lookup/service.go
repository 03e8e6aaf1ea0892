// Package lookup resolves parsed food queries against the local database and the nutrition API.
package lookup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/foodscout/internal/fooddb"
	"github.com/at-ishikawa/foodscout/internal/query"
)

// Source tells how a lookup item was resolved.
type Source string

const (
	SourceLocal    Source = "local"
	SourceAPI      Source = "api"
	SourceEstimate Source = "estimate"
)

// Item is a resolved food scaled to the requested serving.
type Item struct {
	Name          string  `json:"name"`
	LocalizedName string  `json:"localized_name"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein_g"`
	Carbs         float64 `json:"carbs_g"`
	Fat           float64 `json:"fat_g"`
	ServingSize   float64 `json:"serving_size_g"`
	Source        Source  `json:"source"`
	Message       string  `json:"message,omitempty"`
}

func newItem(entry fooddb.FoodEntry, grams float64, source Source) Item {
	scaled := Scale(entry.Nutrients, grams)
	return Item{
		Name:          entry.Key,
		LocalizedName: entry.LocalizedName,
		Calories:      scaled.Calories,
		Protein:       scaled.Protein,
		Carbs:         scaled.Carbs,
		Fat:           scaled.Fat,
		ServingSize:   grams,
		Source:        source,
	}
}

func newEstimateItem(name string, grams float64) Item {
	return Item{
		Name:        name,
		ServingSize: grams,
		Source:      SourceEstimate,
		Message: fmt.Sprintf(
			"%q was not found in the local database and the nutrition API lookup was unavailable; estimate it from similar foods",
			name,
		),
	}
}

func (item Item) Nutrients() fooddb.Nutrients {
	return fooddb.Nutrients{
		Calories: item.Calories,
		Protein:  item.Protein,
		Carbs:    item.Carbs,
		Fat:      item.Fat,
	}
}

// Result is the outcome of one lookup call.
type Result struct {
	Items  []Item       `json:"items"`
	Totals Totals       `json:"totals"`
	Stats  fooddb.Stats `json:"db_stats"`
}

// Service sequences local matching, remote resolution and learning for each query item.
type Service struct {
	resolver Resolver
	learner  *Learner
}

// NewService creates a Service. A nil resolver disables remote resolution.
func NewService(store Store, resolver Resolver) *Service {
	return &Service{
		resolver: resolver,
		learner:  NewLearner(store),
	}
}

// Lookup resolves items one at a time in order; a learned item is persisted before
// the next one is looked at. Besides query.ErrEmptyQuery for an empty item list,
// only persistence failures and the context error of a cancelled ctx are returned.
// A cancelled lookup returns no partial result.
func (s *Service) Lookup(ctx context.Context, db *fooddb.Database, items []query.Item) (*Result, error) {
	if len(items) == 0 {
		return nil, query.ErrEmptyQuery
	}

	result := Result{
		Items: make([]Item, 0, len(items)),
	}
	for _, queryItem := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item, err := s.resolve(ctx, db, queryItem)
		if err != nil {
			return nil, fmt.Errorf("s.resolve(%s) > %w", queryItem.Name, err)
		}
		result.Items = append(result.Items, item)
	}

	result.Totals = Aggregate(result.Items)
	result.Stats = db.Stats()
	return &result, nil
}

func (s *Service) resolve(ctx context.Context, db *fooddb.Database, queryItem query.Item) (Item, error) {
	if entry, ok := db.Find(queryItem.Name); ok {
		slog.Default().Debug("Resolved locally", "query", queryItem.Name, "key", entry.Key)
		return newItem(entry, queryItem.Grams, SourceLocal), nil
	}

	if s.resolver != nil {
		if candidate, ok := s.resolver.Resolve(ctx, queryItem.Name); ok {
			entry, err := s.learner.Learn(db, candidate, queryItem.Name)
			if err != nil {
				return Item{}, fmt.Errorf("learner.Learn() > %w", err)
			}
			return newItem(entry, queryItem.Grams, SourceAPI), nil
		}
		// The resolver reports cancellation as a miss.
		if err := ctx.Err(); err != nil {
			return Item{}, err
		}
	}

	slog.Default().Debug("Falling back to estimate", "query", queryItem.Name)
	return newEstimateItem(queryItem.Name, queryItem.Grams), nil
}
