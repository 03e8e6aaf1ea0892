package fooddb

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

var loadCatalog = sync.OnceValues(func() ([]FoodEntry, error) {
	var entries []FoodEntry
	if err := yaml.Unmarshal(catalogYAML, &entries); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(catalog) > %w", err)
	}
	for i := range entries {
		entries[i].Key = NormalizeKey(entries[i].Key)
		entries[i].Source = SourceBuiltin
	}
	return entries, nil
})

// BuiltinCatalog returns a copy of the builtin foods in catalog order.
// The returned entries carry SourceBuiltin but no AddedAt date.
func BuiltinCatalog() ([]FoodEntry, error) {
	entries, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	out := make([]FoodEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// SeedDatabase builds a new database from the builtin catalog, dated with addedAt.
func SeedDatabase(addedAt string) (*Database, error) {
	entries, err := BuiltinCatalog()
	if err != nil {
		return nil, err
	}
	db := NewDatabase()
	for _, entry := range entries {
		entry.AddedAt = addedAt
		db.Put(entry)
	}
	return db, nil
}
