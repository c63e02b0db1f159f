package model

// DefaultCategories is the category set a fresh vault starts with.
var DefaultCategories = []string{"Apple", "Android", "General", "Other"}

// CategoryStats counts the codes filed under one category.
type CategoryStats struct {
	Category string
	Total    int
	Unused   int
}

// Used returns the number of codes already marked used.
func (s CategoryStats) Used() int {
	return s.Total - s.Unused
}

// CopyDefaultCategories returns a fresh copy of DefaultCategories so callers
// can mutate it freely.
func CopyDefaultCategories() []string {
	out := make([]string, len(DefaultCategories))
	copy(out, DefaultCategories)
	return out
}
