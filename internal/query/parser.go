// Package query parses free-text food queries such as "200g rice, 150g chicken breast".
package query

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultGrams is the serving size used when a segment names no amount.
const DefaultGrams = 100.0

// Item is one food name with the requested serving size in grams.
type Item struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
}

// grammar recognises one way of writing an amount next to a food name.
type grammar struct {
	name        string
	pattern     *regexp.Regexp
	amountGroup int
	nameGroup   int
}

func (g grammar) match(segment string) (Item, bool) {
	m := g.pattern.FindStringSubmatch(segment)
	if m == nil {
		return Item{}, false
	}
	grams, err := strconv.ParseFloat(m[g.amountGroup], 64)
	if err != nil {
		return Item{}, false
	}
	return Item{
		Name:  strings.ToLower(strings.TrimSpace(m[g.nameGroup])),
		Grams: grams,
	}, true
}

// grammars are tried in order and the first match wins.
// Amount-before-name forms must stay ahead of the amount-after-name form.
var grammars = []grammar{
	{
		// "200g rice", "200 g rice", "200 grams rice", "200 grams of rice"
		name:        "amount-prefix",
		pattern:     regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*g(?:rams?)?\s+(?:of\s+)?(.+)$`),
		amountGroup: 1,
		nameGroup:   2,
	},
	{
		// "200g米饭": no separator is needed before a non-ASCII name
		name:        "amount-prefix-attached",
		pattern:     regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*g(?:rams?)?([^\x00-\x7F].*)$`),
		amountGroup: 1,
		nameGroup:   2,
	},
	{
		// "rice 200g", "rice 200 grams"
		name:        "amount-suffix",
		pattern:     regexp.MustCompile(`(?i)^(.+?)\s+(\d+(?:\.\d+)?)\s*g(?:rams?)?$`),
		amountGroup: 2,
		nameGroup:   1,
	},
	{
		// "米饭200g"
		name:        "amount-suffix-attached",
		pattern:     regexp.MustCompile(`(?i)^(.*[^\x00-\x7F])(\d+(?:\.\d+)?)\s*g(?:rams?)?$`),
		amountGroup: 2,
		nameGroup:   1,
	},
}

// ParseSegment parses a single item. ok is false when the segment has no usable name
// or names an amount that is not positive.
func ParseSegment(segment string) (Item, bool) {
	text := strings.TrimSpace(segment)
	if text == "" {
		return Item{}, false
	}

	item := Item{Name: strings.ToLower(text), Grams: DefaultGrams}
	for _, g := range grammars {
		if matched, ok := g.match(text); ok {
			item = matched
			break
		}
	}

	if item.Name == "" || item.Grams <= 0 {
		return Item{}, false
	}
	return item, true
}

// Parse splits text on ASCII or full-width commas and parses every segment in order.
// Segments that do not yield an item are dropped.
func Parse(text string) []Item {
	// NFKC folds full-width commas, digits and letters into their ASCII forms.
	text = norm.NFKC.String(text)
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '，'
	})

	items := make([]Item, 0, len(segments))
	for _, segment := range segments {
		if item, ok := ParseSegment(segment); ok {
			items = append(items, item)
		}
	}
	return items
}
