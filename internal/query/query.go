// Package query derives read-only views of vault contents. Nothing here
// mutates its input or keeps state between calls.
package query

import (
	"sort"

	"github.com/Veraticus/codevault/internal/model"
)

// FilterByCategory returns the codes filed under category, oldest first.
// Codes with equal timestamps keep their input order.
func FilterByCategory(codes []model.Code, category string) []model.Code {
	filtered := make([]model.Code, 0, len(codes))
	for _, c := range codes {
		if c.Category == category {
			filtered = append(filtered, c)
		}
	}
	sortByCreated(filtered)
	return filtered
}

// GroupByPrefix partitions codes by prefix. Groups come out in ascending
// prefix order and each group's codes oldest first.
func GroupByPrefix(codes []model.Code) []model.CodeGroup {
	byPrefix := make(map[string][]model.Code)
	for _, c := range codes {
		byPrefix[c.Prefix] = append(byPrefix[c.Prefix], c)
	}

	prefixes := make([]string, 0, len(byPrefix))
	for prefix := range byPrefix {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	groups := make([]model.CodeGroup, len(prefixes))
	for i, prefix := range prefixes {
		members := byPrefix[prefix]
		sortByCreated(members)
		groups[i] = model.CodeGroup{Prefix: prefix, Codes: members}
	}
	return groups
}

// CategoryView is the tab view of one category: its codes grouped by prefix.
func CategoryView(codes []model.Code, category string) []model.CodeGroup {
	return GroupByPrefix(FilterByCategory(codes, category))
}

// StatsByCategory counts total and unused codes per category, in category
// order. Categories with no codes are reported with zero counts.
func StatsByCategory(codes []model.Code, categories []string) []model.CategoryStats {
	index := make(map[string]int, len(categories))
	stats := make([]model.CategoryStats, len(categories))
	for i, cat := range categories {
		index[cat] = i
		stats[i] = model.CategoryStats{Category: cat}
	}

	for _, c := range codes {
		i, ok := index[c.Category]
		if !ok {
			continue
		}
		stats[i].Total++
		if !c.IsUsed {
			stats[i].Unused++
		}
	}
	return stats
}

// StatsMap is StatsByCategory keyed by category label.
func StatsMap(codes []model.Code, categories []string) map[string]model.CategoryStats {
	stats := StatsByCategory(codes, categories)
	out := make(map[string]model.CategoryStats, len(stats))
	for _, s := range stats {
		out[s.Category] = s
	}
	return out
}

func sortByCreated(codes []model.Code) {
	sort.SliceStable(codes, func(i, j int) bool {
		return codes[i].CreatedAt < codes[j].CreatedAt
	})
}
