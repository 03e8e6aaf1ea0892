// https://fdc.nal.usda.gov/api-guide
package usda

import (
	"strings"

	"github.com/at-ishikawa/foodscout/internal/fooddb"
)

// Nutrient names used by FoodData Central search results.
const (
	NutrientEnergy  = "Energy"
	NutrientProtein = "Protein"
	NutrientCarbs   = "Carbohydrate, by difference"
	NutrientFat     = "Total lipid (fat)"

	unitKilocalorie = "KCAL"
)

type SearchResponse struct {
	TotalHits int    `json:"totalHits"`
	Foods     []Food `json:"foods"`
}

type Food struct {
	FdcID         int            `json:"fdcId"`
	Description   string         `json:"description"`
	DataType      string         `json:"dataType"`
	FoodNutrients []FoodNutrient `json:"foodNutrients"`
}

type FoodNutrient struct {
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}

// Candidate is a search result normalized to per-100g values.
type Candidate struct {
	Name      string
	Nutrients fooddb.Nutrients
}

// Normalize maps the four tracked nutrients of a search result into per-100g values.
// Survey data is already reported per 100g. Missing nutrients are 0.
func (f Food) Normalize() Candidate {
	var nutrients fooddb.Nutrients
	energySeen, energyInKcal := false, false
	for _, n := range f.FoodNutrients {
		switch n.NutrientName {
		case NutrientEnergy:
			// Foundation foods may list energy in both kJ and kcal.
			// The first kcal row wins, otherwise the first energy row.
			isKcal := strings.EqualFold(n.UnitName, unitKilocalorie)
			if !energySeen || (isKcal && !energyInKcal) {
				nutrients.Calories = n.Value
				energyInKcal = isKcal
			}
			energySeen = true
		case NutrientProtein:
			nutrients.Protein = n.Value
		case NutrientCarbs:
			nutrients.Carbs = n.Value
		case NutrientFat:
			nutrients.Fat = n.Value
		}
	}

	return Candidate{
		Name:      strings.ToLower(strings.TrimSpace(f.Description)),
		Nutrients: nutrients.Rounded(),
	}
}
