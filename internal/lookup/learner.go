package lookup

import (
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/foodscout/internal/fooddb"
	"github.com/at-ishikawa/foodscout/internal/fooddb/usda"
)

// Learner writes resolved foods into the database so later lookups resolve locally.
type Learner struct {
	store Store
}

func NewLearner(store Store) *Learner {
	return &Learner{store: store}
}

// Learn stores candidate under its normalized name, or under queryName when the
// candidate has none, and persists the whole database. An existing entry with the
// same key is replaced.
func (l *Learner) Learn(db *fooddb.Database, candidate usda.Candidate, queryName string) (fooddb.FoodEntry, error) {
	key := fooddb.NormalizeKey(candidate.Name)
	if key == "" {
		key = fooddb.NormalizeKey(queryName)
	}

	entry := db.Put(fooddb.FoodEntry{
		Key:       key,
		Nutrients: candidate.Nutrients,
		Source:    fooddb.SourceAPI,
		AddedAt:   l.store.Today(),
	})
	if err := l.store.Save(db); err != nil {
		return entry, fmt.Errorf("store.Save() > %w", err)
	}
	slog.Default().Info("Learned food", "key", entry.Key, "query", queryName)
	return entry, nil
}
