// Package fooddb provides the per-100g food database, its builtin catalog, persistence and local matching.
package fooddb

import (
	"math"
	"sort"
	"strings"
)

const CurrentVersion = "1.0"

// Source tells where a food entry came from.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourceAPI     Source = "api"
)

// Nutrients holds the four tracked nutrient magnitudes.
// Values stored in the database are per 100g.
type Nutrients struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fat      float64 `json:"fat" yaml:"fat"`
}

// Scale multiplies every nutrient by factor and rounds each to one decimal.
func (n Nutrients) Scale(factor float64) Nutrients {
	return Nutrients{
		Calories: Round1(n.Calories * factor),
		Protein:  Round1(n.Protein * factor),
		Carbs:    Round1(n.Carbs * factor),
		Fat:      Round1(n.Fat * factor),
	}
}

// Add returns the field-wise sum without rounding.
func (n Nutrients) Add(other Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + other.Calories,
		Protein:  n.Protein + other.Protein,
		Carbs:    n.Carbs + other.Carbs,
		Fat:      n.Fat + other.Fat,
	}
}

// Rounded rounds every nutrient to one decimal.
func (n Nutrients) Rounded() Nutrients {
	return n.Scale(1)
}

// Round1 rounds v to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FoodEntry is a single per-100g record keyed by its canonical lowercase name.
type FoodEntry struct {
	Key           string `json:"-" yaml:"key"`
	LocalizedName string `json:"localized_name" yaml:"localized_name"`
	Nutrients     `yaml:",inline"`
	Source        Source `json:"source" yaml:"source,omitempty"`
	AddedAt       string `json:"added_at" yaml:"added_at,omitempty"`
}

// IsBuiltin reports whether the entry was shipped with the catalog.
// Entries without a source tag count as learned.
func (e FoodEntry) IsBuiltin() bool {
	return e.Source == SourceBuiltin
}

// Database is the persisted mapping of canonical key to entry.
type Database struct {
	Version string               `json:"version"`
	Foods   map[string]FoodEntry `json:"foods"`
}

// Stats summarises the database contents.
type Stats struct {
	Total   int `json:"total"`
	Builtin int `json:"builtin"`
	Learned int `json:"learned"`
}

// NewDatabase returns an empty database at the current version.
func NewDatabase() *Database {
	return &Database{
		Version: CurrentVersion,
		Foods:   make(map[string]FoodEntry),
	}
}

// NormalizeKey lowercases and trims a food name into its canonical key form.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Put stores entry under its normalized key, replacing any existing entry.
func (db *Database) Put(entry FoodEntry) FoodEntry {
	if db.Foods == nil {
		db.Foods = make(map[string]FoodEntry)
	}
	entry.Key = NormalizeKey(entry.Key)
	db.Foods[entry.Key] = entry
	return entry
}

// Get returns the entry stored under key, ignoring case and surrounding whitespace.
func (db *Database) Get(key string) (FoodEntry, bool) {
	entry, ok := db.Foods[NormalizeKey(key)]
	return entry, ok
}

// Len returns the number of entries.
func (db *Database) Len() int {
	return len(db.Foods)
}

// Keys returns every key in lexicographic order.
func (db *Database) Keys() []string {
	keys := make([]string, 0, len(db.Foods))
	for key := range db.Foods {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Entries returns every entry ordered by key.
func (db *Database) Entries() []FoodEntry {
	keys := db.Keys()
	entries := make([]FoodEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, db.Foods[key])
	}
	return entries
}

func (db *Database) Stats() Stats {
	var stats Stats
	for _, entry := range db.Foods {
		stats.Total++
		if entry.IsBuiltin() {
			stats.Builtin++
		} else {
			stats.Learned++
		}
	}
	return stats
}

// normalize rebuilds the map after decoding so keys are canonical and every entry knows its key.
func (db *Database) normalize() {
	foods := db.Foods
	db.Foods = make(map[string]FoodEntry, len(foods))
	keys := make([]string, 0, len(foods))
	for key := range foods {
		keys = append(keys, key)
	}
	// Sorting makes the winner deterministic when two raw keys fold to the same canonical key.
	sort.Strings(keys)
	for _, key := range keys {
		if NormalizeKey(key) == "" {
			continue
		}
		entry := foods[key]
		entry.Key = key
		db.Put(entry)
	}
	if db.Version == "" {
		db.Version = CurrentVersion
	}
}
