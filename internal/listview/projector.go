// Package listview derives the rendered section list from a raw entity
// list and the current search text. Sections are produced fresh on every
// pass and never mutated in place.
package listview

import (
	"sort"
	"strings"
)

// Section is one titled group of entities, in input order.
type Section[T any] struct {
	Title string
	Items []T
}

// Config describes how one entity type is filtered and grouped.
type Config[T any] struct {
	// SearchFields returns the values matched against the search text.
	SearchFields func(T) []string
	// SectionKey returns the group title for one item.
	SectionKey func(T) string
	// Descending orders section titles newest-first (appointment dates).
	Descending bool
}

// Project filters items by a case-insensitive substring match and
// partitions them into ordered sections. Empty search text matches
// everything; a nil list yields no sections.
func Project[T any](items []T, search string, cfg Config[T]) []Section[T] {
	term := strings.ToLower(search)

	grouped := map[string][]T{}
	var keys []string
	for _, item := range items {
		if term != "" && !matches(cfg.SearchFields(item), term) {
			continue
		}
		key := cfg.SectionKey(item)
		if _, seen := grouped[key]; !seen {
			keys = append(keys, key)
		}
		grouped[key] = append(grouped[key], item)
	}

	sort.Strings(keys)
	if cfg.Descending {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}

	sections := make([]Section[T], 0, len(keys))
	for _, key := range keys {
		sections = append(sections, Section[T]{Title: key, Items: grouped[key]})
	}
	return sections
}

func matches(fields []string, term string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// NameKey is the grouping key for alphabetic sections: the uppercased
// first character of the name, or "#" when the name is empty.
func NameKey(name string) string {
	if name == "" {
		return "#"
	}
	runes := []rune(name)
	return strings.ToUpper(string(runes[0]))
}

// DateKey is the grouping key for appointment sections: the date portion
// of an ISO date-time, or the "Sem Data" sentinel when absent.
func DateKey(dateTime string) string {
	if dateTime == "" {
		return "Sem Data"
	}
	if i := strings.IndexByte(dateTime, 'T'); i >= 0 {
		return dateTime[:i]
	}
	return dateTime
}

// FormatDateTitle renders a date section title for display:
// "2025-12-25" → "25/12/2025". Non-date titles pass through unchanged.
func FormatDateTitle(title string) string {
	parts := strings.Split(title, "-")
	if len(parts) != 3 {
		return title
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
