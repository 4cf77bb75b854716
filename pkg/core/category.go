package core

import (
	"encoding/json"
	"sort"
)

// Category is the normalized semantic bucket a manuscript section falls into.
type Category string

// Section categories.
const (
	CategoryIntroduction Category = "Introduction"
	CategoryMethods      Category = "Methods"
	CategoryResults      Category = "Results"
	CategoryDiscussion   Category = "Discussion"
	CategoryAbstract     Category = "Abstract"
	CategoryConclusion   Category = "Conclusion"
	CategoryOther        Category = "Other"
)

// String returns the display name of the category.
func (c Category) String() string {
	return string(c)
}

// CategorySet is an unordered set of categories.
type CategorySet map[Category]struct{}

// NewCategorySet builds a set from the given categories.
func NewCategorySet(categories ...Category) CategorySet {
	s := make(CategorySet, len(categories))
	for _, c := range categories {
		s.Add(c)
	}
	return s
}

// Add inserts c into the set.
func (s CategorySet) Add(c Category) {
	s[c] = struct{}{}
}

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// Difference returns the categories in s that are not in other.
func (s CategorySet) Difference(other CategorySet) CategorySet {
	out := make(CategorySet)
	for c := range s {
		if !other.Has(c) {
			out.Add(c)
		}
	}
	return out
}

// Sorted returns the categories in alphabetical order.
func (s CategorySet) Sorted() []Category {
	out := make([]Category, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the sorted category names.
func (s CategorySet) Strings() []string {
	sorted := s.Sorted()
	out := make([]string, len(sorted))
	for i, c := range sorted {
		out[i] = string(c)
	}
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s CategorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON decodes a set from an array of names.
func (s *CategorySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	set := make(CategorySet, len(names))
	for _, n := range names {
		set.Add(Category(n))
	}
	*s = set
	return nil
}
