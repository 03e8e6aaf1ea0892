package usda

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/foodscout/internal/fooddb"
)

func TestFood_Normalize(t *testing.T) {
	tests := []struct {
		name string
		food Food
		want Candidate
	}{
		{
			name: "all nutrients present",
			food: durian,
			want: Candidate{
				Name:      "durian, raw or frozen",
				Nutrients: fooddb.Nutrients{Calories: 147, Protein: 1.5, Carbs: 27.1, Fat: 5.3},
			},
		},
		{
			name: "missing nutrients default to zero",
			food: Food{
				Description: "  Black Coffee ",
				FoodNutrients: []FoodNutrient{
					{NutrientName: NutrientEnergy, UnitName: "KCAL", Value: 1.96},
					{NutrientName: "Caffeine", UnitName: "MG", Value: 40},
				},
			},
			want: Candidate{
				Name:      "black coffee",
				Nutrients: fooddb.Nutrients{Calories: 2.0},
			},
		},
		{
			name: "kilocalories win over kilojoules",
			food: Food{
				Description: "Apple",
				FoodNutrients: []FoodNutrient{
					{NutrientName: NutrientEnergy, UnitName: "kJ", Value: 218},
					{NutrientName: NutrientEnergy, UnitName: "KCAL", Value: 52},
					{NutrientName: NutrientEnergy, UnitName: "kJ", Value: 219},
				},
			},
			want: Candidate{
				Name:      "apple",
				Nutrients: fooddb.Nutrients{Calories: 52},
			},
		},
		{
			name: "first energy row is kept without kilocalories",
			food: Food{
				Description: "Pear",
				FoodNutrients: []FoodNutrient{
					{NutrientName: NutrientEnergy, UnitName: "kJ", Value: 100},
					{NutrientName: NutrientEnergy, UnitName: "kJ", Value: 200},
				},
			},
			want: Candidate{
				Name:      "pear",
				Nutrients: fooddb.Nutrients{Calories: 100},
			},
		},
		{
			name: "no description",
			food: Food{},
			want: Candidate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.food.Normalize())
		})
	}
}

func TestSearchResponse_UnmarshalJSON(t *testing.T) {
	body := `{
		"totalHits": 1,
		"foods": [{
			"fdcId": 2345,
			"description": "Durian, raw or frozen",
			"dataType": "Survey (FNDDS)",
			"foodNutrients": [
				{"nutrientId": 1003, "nutrientName": "Protein", "unitName": "G", "value": 1.47},
				{"nutrientId": 1008, "nutrientName": "Energy", "unitName": "KCAL", "value": 147}
			]
		}]
	}`

	var response SearchResponse
	require.NoError(t, json.Unmarshal([]byte(body), &response))
	require.Len(t, response.Foods, 1)
	assert.Equal(t, "Durian, raw or frozen", response.Foods[0].Description)
	assert.Equal(t, []FoodNutrient{
		{NutrientName: NutrientProtein, UnitName: "G", Value: 1.47},
		{NutrientName: NutrientEnergy, UnitName: "KCAL", Value: 147},
	}, response.Foods[0].FoodNutrients)
}
