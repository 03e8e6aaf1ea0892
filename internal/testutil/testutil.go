// Package testutil provides shared test helpers for config files, food databases and a fake USDA API.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/foodscout/internal/fooddb"
	"github.com/at-ishikawa/foodscout/internal/fooddb/usda"
)

// StorePath returns the food database path used by configs created in tmpDir.
func StorePath(tmpDir string) string {
	return filepath.Join(tmpDir, "data", "food-db.json")
}

// SetupTestConfig creates an offline config file whose food database lives under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`store:
  path: %s
usda:
  enabled: false
`, StorePath(tmpDir))

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithUSDA creates a config file that resolves misses against baseURL.
func SetupTestConfigWithUSDA(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()

	configContent := fmt.Sprintf(`store:
  path: %s
usda:
  enabled: true
  base_url: %s
  api_key: fake-key-for-testing
  timeout_seconds: 5
`, StorePath(tmpDir), baseURL)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WriteFoodDatabase persists entries on top of the builtin catalog at path.
func WriteFoodDatabase(t *testing.T, path string, entries ...fooddb.FoodEntry) *fooddb.Database {
	t.Helper()

	db, err := fooddb.SeedDatabase("2026-10-01")
	require.NoError(t, err)
	for _, entry := range entries {
		db.Put(entry)
	}
	require.NoError(t, fooddb.NewFileStore(path).Save(db))
	return db
}

// FakeUSDA serves /foods/search from a fixed set of foods keyed by query.
type FakeUSDA struct {
	*httptest.Server

	mu      sync.Mutex
	foods   map[string]usda.Food
	queries []string
}

// NewFakeUSDA starts a fake FoodData Central API. Unknown queries return no foods.
func NewFakeUSDA(t *testing.T, foods map[string]usda.Food) *FakeUSDA {
	t.Helper()

	fake := &FakeUSDA{foods: foods}
	fake.Server = httptest.NewServer(http.HandlerFunc(fake.handle))
	t.Cleanup(fake.Close)
	return fake
}

func (f *FakeUSDA) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/foods/search" {
		http.NotFound(w, r)
		return
	}
	query := r.URL.Query().Get("query")

	f.mu.Lock()
	f.queries = append(f.queries, query)
	food, ok := f.foods[query]
	f.mu.Unlock()

	response := usda.SearchResponse{}
	if ok {
		response.TotalHits = 1
		response.Foods = []usda.Food{food}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

// Queries returns every query received so far, in order.
func (f *FakeUSDA) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

// NewFood builds a search result carrying the four tracked nutrients.
func NewFood(description string, nutrients fooddb.Nutrients) usda.Food {
	return usda.Food{
		Description: description,
		DataType:    usda.DefaultDataType,
		FoodNutrients: []usda.FoodNutrient{
			{NutrientName: usda.NutrientEnergy, UnitName: "KCAL", Value: nutrients.Calories},
			{NutrientName: usda.NutrientProtein, UnitName: "G", Value: nutrients.Protein},
			{NutrientName: usda.NutrientCarbs, UnitName: "G", Value: nutrients.Carbs},
			{NutrientName: usda.NutrientFat, UnitName: "G", Value: nutrients.Fat},
		},
	}
}
