package lookup

import (
	"github.com/at-ishikawa/foodscout/internal/fooddb"
)

// Scale converts per-100g values to a serving of grams.
func Scale(per100g fooddb.Nutrients, grams float64) fooddb.Nutrients {
	return per100g.Scale(grams / 100)
}

// Totals are the summed nutrients of a lookup.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein_g"`
	Carbs    float64 `json:"carbs_g"`
	Fat      float64 `json:"fat_g"`
	Count    int     `json:"count"`
}

// Aggregate sums every item. Estimate items count and contribute zero.
func Aggregate(items []Item) Totals {
	var sum fooddb.Nutrients
	for _, item := range items {
		sum = sum.Add(item.Nutrients())
	}
	sum = sum.Rounded()
	return Totals{
		Calories: sum.Calories,
		Protein:  sum.Protein,
		Carbs:    sum.Carbs,
		Fat:      sum.Fat,
		Count:    len(items),
	}
}
