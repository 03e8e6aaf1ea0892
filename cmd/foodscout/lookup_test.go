package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/foodscout/internal/fooddb"
	"github.com/at-ishikawa/foodscout/internal/fooddb/usda"
	"github.com/at-ishikawa/foodscout/internal/lookup"
	"github.com/at-ishikawa/foodscout/internal/testutil"
)

type lookupOutput struct {
	Status string        `json:"status"`
	Items  []lookup.Item `json:"items"`
	Totals lookup.Totals `json:"totals"`
	Stats  fooddb.Stats  `json:"db_stats"`
}

func TestLookupCommand(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)

	output, code := runCLI(t, "lookup", "--config", cfgPath, "200g rice, 150g chicken breast")
	require.Equal(t, 0, code, output)

	got := decodeJSON[lookupOutput](t, output)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, lookup.Totals{Calories: 507.5, Protein: 51.9, Carbs: 56, Fat: 6, Count: 2}, got.Totals)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "rice", got.Items[0].Name)
	assert.Equal(t, "米饭", got.Items[0].LocalizedName)
	assert.Equal(t, lookup.SourceLocal, got.Items[1].Source)
	assert.Equal(t, fooddb.Stats{Total: 87, Builtin: 87}, got.Stats)
	assert.Contains(t, output, `"localized_name": "米饭"`)

	assert.FileExists(t, testutil.StorePath(tmpDir))
}

func TestLookupCommand_JoinsArguments(t *testing.T) {
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())

	output, code := runCLI(t, "lookup", "--config", cfgPath, "200g", "rice")
	require.Equal(t, 0, code, output)

	got := decodeJSON[lookupOutput](t, output)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 200.0, got.Items[0].ServingSize)
}

func TestLookupCommand_EmptyQuery(t *testing.T) {
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())

	output, code := runCLI(t, "lookup", "--config", cfgPath, " , ")
	assert.Equal(t, 1, code)
	assert.Equal(t, errorResponse{Status: "error", Message: "No food items found in query."}, decodeJSON[errorResponse](t, output))
}

func TestLookupCommand_Offline(t *testing.T) {
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())

	output, code := runCLI(t, "lookup", "--config", cfgPath, "xylitol gum 30g")
	require.Equal(t, 0, code, output)

	got := decodeJSON[lookupOutput](t, output)
	require.Len(t, got.Items, 1)
	assert.Equal(t, lookup.SourceEstimate, got.Items[0].Source)
	assert.Equal(t, 30.0, got.Items[0].ServingSize)
	assert.NotEmpty(t, got.Items[0].Message)
	assert.Equal(t, lookup.Totals{Count: 1}, got.Totals)
}

func TestLookupCommand_LearnsFromUSDA(t *testing.T) {
	fake := testutil.NewFakeUSDA(t, map[string]usda.Food{
		"durian": testutil.NewFood("Durian, raw or frozen", fooddb.Nutrients{Calories: 147, Protein: 1.47, Carbs: 27.09, Fat: 5.33}),
	})
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfigWithUSDA(t, tmpDir, fake.URL)

	output, code := runCLI(t, "lookup", "--config", cfgPath, "200g durian")
	require.Equal(t, 0, code, output)
	first := decodeJSON[lookupOutput](t, output)
	require.Len(t, first.Items, 1)
	assert.Equal(t, lookup.Item{
		Name:        "durian, raw or frozen",
		Calories:    294,
		Protein:     3,
		Carbs:       54.2,
		Fat:         10.6,
		ServingSize: 200,
		Source:      lookup.SourceAPI,
	}, first.Items[0])
	assert.Equal(t, fooddb.Stats{Total: 88, Builtin: 87, Learned: 1}, first.Stats)

	output, code = runCLI(t, "lookup", "--config", cfgPath, "durian 100g")
	require.Equal(t, 0, code, output)
	second := decodeJSON[lookupOutput](t, output)
	require.Len(t, second.Items, 1)
	assert.Equal(t, lookup.SourceLocal, second.Items[0].Source)
	assert.Equal(t, 147.0, second.Items[0].Calories)

	assert.Equal(t, []string{"durian"}, fake.Queries())
}

func TestLookupCommand_USDAMiss(t *testing.T) {
	fake := testutil.NewFakeUSDA(t, nil)
	cfgPath := testutil.SetupTestConfigWithUSDA(t, t.TempDir(), fake.URL)

	output, code := runCLI(t, "lookup", "--config", cfgPath, "xylitol gum")
	require.Equal(t, 0, code, output)

	got := decodeJSON[lookupOutput](t, output)
	require.Len(t, got.Items, 1)
	assert.Equal(t, lookup.SourceEstimate, got.Items[0].Source)
	// The broadened retry repeats the same query.
	assert.Equal(t, []string{"xylitol gum", "xylitol gum"}, fake.Queries())
}

func TestLookupCommand_TableFormat(t *testing.T) {
	cfgPath := testutil.SetupTestConfig(t, t.TempDir())

	output, code := runCLI(t, "lookup", "--config", cfgPath, "--format", "table", "200g rice, 150g chicken breast, xylitol gum")
	require.Equal(t, 0, code, output)

	assert.Contains(t, output, "NAME")
	assert.Contains(t, output, "chicken breast")
	assert.Contains(t, output, "TOTAL (3)")
	assert.Contains(t, output, "507.5")
	assert.Contains(t, output, "note: ")
}
