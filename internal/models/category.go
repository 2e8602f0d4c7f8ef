package models

import (
	"encoding/json"
	"fmt"
)

// Category is one key of the fixed reminder category catalog
type Category string

const (
	CategoryHealth    Category = "health"
	CategoryWork      Category = "work"
	CategoryPersonal  Category = "personal"
	CategoryFamily    Category = "family"
	CategoryFinance   Category = "finance"
	CategoryHome      Category = "home"
	CategoryEducation Category = "education"
	CategorySocial    Category = "social"

	// CategoryUnknown is the fallback for keys outside the catalog and for
	// logs whose reminder cannot be resolved.
	CategoryUnknown Category = "unknown"
)

// CategoryInfo is the display metadata for a category
type CategoryInfo struct {
	Key   Category `json:"key"`
	Label string   `json:"label"`
	Color string   `json:"color"`
	Icon  string   `json:"icon"`
}

var catalog = [...]CategoryInfo{
	{Key: CategoryHealth, Label: "Health", Color: "#10b981", Icon: "🏥"},
	{Key: CategoryWork, Label: "Work", Color: "#3b82f6", Icon: "💼"},
	{Key: CategoryPersonal, Label: "Personal", Color: "#8b5cf6", Icon: "👤"},
	{Key: CategoryFamily, Label: "Family", Color: "#ec4899", Icon: "👨‍👩‍👧‍👦"},
	{Key: CategoryFinance, Label: "Finance", Color: "#f59e0b", Icon: "💰"},
	{Key: CategoryHome, Label: "Home", Color: "#f97316", Icon: "🏠"},
	{Key: CategoryEducation, Label: "Education", Color: "#6366f1", Icon: "📚"},
	{Key: CategorySocial, Label: "Social", Color: "#06b6d4", Icon: "👥"},
}

var unknownCategory = CategoryInfo{Key: CategoryUnknown, Label: "Unknown", Color: "#6b7280", Icon: "❔"}

// Categories returns the fixed catalog in display order
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(catalog))
	copy(out, catalog[:])
	return out
}

// ParseCategory resolves a raw key against the catalog
func ParseCategory(s string) (Category, bool) {
	for _, c := range catalog {
		if string(c.Key) == s {
			return c.Key, true
		}
	}
	return CategoryUnknown, false
}

// Info returns the catalog entry for c, or the Unknown entry
func (c Category) Info() CategoryInfo {
	for _, info := range catalog {
		if info.Key == c {
			return info
		}
	}
	return unknownCategory
}

// Label returns the human label for c
func (c Category) Label() string {
	return c.Info().Label
}

// Known reports whether c belongs to the catalog
func (c Category) Known() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

// UnmarshalJSON maps keys outside the catalog to CategoryUnknown
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category must be a string: %w", err)
	}
	*c, _ = ParseCategory(s)
	return nil
}
