package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/foodscout/internal/fooddb"
	"github.com/at-ishikawa/foodscout/internal/lookup"
)

type Format string

func (f *Format) Set(val string) error {
	for _, format := range allFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "Format"
}

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

var (
	_          pflag.Value = (*Format)(nil)
	allFormats             = []Format{FormatJSON, FormatTable}
)

const (
	statusOK    = "ok"
	statusError = "error"
)

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func newErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: publicMessage(err),
	}
}

// foodView is a per-100g entry as shown by search and list.
type foodView struct {
	Name          string        `json:"name"`
	LocalizedName string        `json:"localized_name"`
	Calories      float64       `json:"calories"`
	Protein       float64       `json:"protein_g"`
	Carbs         float64       `json:"carbs_g"`
	Fat           float64       `json:"fat_g"`
	Source        fooddb.Source `json:"source"`
	Per100g       bool          `json:"per_100g,omitempty"`
}

func newFoodView(entry fooddb.FoodEntry) foodView {
	source := entry.Source
	if source == "" {
		source = fooddb.SourceBuiltin
	}
	return foodView{
		Name:          entry.Key,
		LocalizedName: entry.LocalizedName,
		Calories:      entry.Calories,
		Protein:       entry.Protein,
		Carbs:         entry.Carbs,
		Fat:           entry.Fat,
		Source:        source,
	}
}

type lookupResponse struct {
	Status string `json:"status"`
	*lookup.Result
}

type searchResponse struct {
	Status  string       `json:"status"`
	Query   string       `json:"query"`
	Count   int          `json:"count"`
	Results []foodView   `json:"results"`
	Stats   fooddb.Stats `json:"db_stats"`
}

type listResponse struct {
	Status string       `json:"status"`
	Count  int          `json:"count"`
	Foods  []foodView   `json:"foods"`
	Stats  fooddb.Stats `json:"db_stats"`
}

type statsResponse struct {
	Status string `json:"status"`
	fooddb.Stats
}

// writeJSON writes v as indented JSON without escaping non-ASCII or HTML characters.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fail(msgOutput, fmt.Errorf("encoder.Encode() > %w", err))
	}
	return nil
}

// render writes v as JSON, or through table when the table format is selected.
func render(w io.Writer, v any, table func(w io.Writer)) error {
	if outputFormat != FormatTable {
		return writeJSON(w, v)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	table(tw)
	if err := tw.Flush(); err != nil {
		return fail(msgOutput, fmt.Errorf("tw.Flush() > %w", err))
	}
	return nil
}

var sourceColors = map[string]*color.Color{
	"api":      color.New(color.FgGreen),
	"local":    color.New(color.FgCyan),
	"estimate": color.New(color.FgYellow),
}

// colorSource highlights where a value came from. It must stay the last column
// because the escape codes would throw off tab alignment.
func colorSource(source string) string {
	if c, ok := sourceColors[source]; ok {
		return c.Sprint(source)
	}
	return source
}

func writeFoodTable(w io.Writer, foods []foodView) {
	_, _ = fmt.Fprintln(w, "NAME\tLOCALIZED\tKCAL/100G\tPROTEIN\tCARBS\tFAT\tSOURCE")
	for _, food := range foods {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%s\n",
			food.Name, food.LocalizedName, food.Calories, food.Protein, food.Carbs, food.Fat, colorSource(string(food.Source)))
	}
}

func writeLookupTable(w io.Writer, result *lookup.Result) {
	_, _ = fmt.Fprintln(w, "NAME\tLOCALIZED\tGRAMS\tKCAL\tPROTEIN\tCARBS\tFAT\tSOURCE")
	for _, item := range result.Items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%g\t%.1f\t%.1f\t%.1f\t%.1f\t%s\n",
			item.Name, item.LocalizedName, item.ServingSize, item.Calories, item.Protein, item.Carbs, item.Fat, colorSource(string(item.Source)))
	}
	totals := result.Totals
	_, _ = fmt.Fprintf(w, "TOTAL (%d)\t\t\t%.1f\t%.1f\t%.1f\t%.1f\t\n", totals.Count, totals.Calories, totals.Protein, totals.Carbs, totals.Fat)
	for _, item := range result.Items {
		if item.Message != "" {
			_, _ = fmt.Fprintf(w, "note: %s\n", item.Message)
		}
	}
}

func writeStatsTable(w io.Writer, stats fooddb.Stats) {
	_, _ = fmt.Fprintln(w, "TOTAL\tBUILTIN\tLEARNED")
	_, _ = fmt.Fprintf(w, "%d\t%d\t%d\n", stats.Total, stats.Builtin, stats.Learned)
}
