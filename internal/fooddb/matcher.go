package fooddb

import (
	"strings"
)

// FindExact looks query up as a key, ignoring case and surrounding whitespace.
func (db *Database) FindExact(query string) (FoodEntry, bool) {
	return db.Get(query)
}

// FindFuzzy returns the matching entry with the shortest key.
// Keys of equal length are ordered lexicographically, so the result is stable.
func (db *Database) FindFuzzy(query string) (FoodEntry, bool) {
	candidates := db.Matches(query)
	if len(candidates) == 0 {
		return FoodEntry{}, false
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if len(candidate.Key) < len(best.Key) {
			best = candidate
		}
	}
	return best, true
}

// Find tries an exact match first and falls back to a fuzzy match.
func (db *Database) Find(query string) (FoodEntry, bool) {
	if entry, ok := db.FindExact(query); ok {
		return entry, true
	}
	return db.FindFuzzy(query)
}

// Matches returns, ordered by key, every entry whose key contains the query,
// whose key is contained in the query, or whose localized name contains the query.
func (db *Database) Matches(query string) []FoodEntry {
	needle := NormalizeKey(query)
	var matches []FoodEntry
	for _, entry := range db.Entries() {
		if matchesEntry(needle, entry) {
			matches = append(matches, entry)
		}
	}
	return matches
}

func matchesEntry(needle string, entry FoodEntry) bool {
	if entry.Key == "" {
		return false
	}
	if strings.Contains(entry.Key, needle) || strings.Contains(needle, entry.Key) {
		return true
	}
	return strings.Contains(entry.LocalizedName, needle)
}
