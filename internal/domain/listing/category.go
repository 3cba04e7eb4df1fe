package listing

import "strings"

// CategoryTable maps a lowercase hierarchical category path to a marketplace
// category id. Lookups walk the path from most to least specific, so a table
// entry for "men > sweaters" also covers "men > sweaters > cardigan" when the
// full path has no entry of its own.
type CategoryTable struct {
	entries   map[string]string
	defaultID string
}

// NewCategoryTable builds a table from explicit entries and a default id
// returned when no prefix matches.
func NewCategoryTable(entries map[string]string, defaultID string) *CategoryTable {
	normalized := make(map[string]string, len(entries))
	for path, id := range entries {
		normalized[normalizeCategoryPath(path)] = id
	}
	return &CategoryTable{entries: normalized, defaultID: defaultID}
}

// DefaultCategoryTable returns the built-in garment category mapping for the
// US marketplace site.
func DefaultCategoryTable() *CategoryTable {
	return NewCategoryTable(map[string]string{
		"men > sweaters > cardigan":  "11484",
		"men > sweaters > pullover":  "11484",
		"men > sweaters":             "11484",
		"men > shirts > dress shirt": "57991",
		"men > shirts > t-shirt":     "15687",
		"men > shirts > casual":      "57990",
		"men > shirts":               "57990",
		"men > jackets":              "57988",
		"men > coats":                "57988",
		"men > vests":                "15691",
		"men > pants > jeans":        "11483",
		"men > jeans":                "11483",
		"men > pants > dress":        "57989",
		"men > pants":                "57989",
		"men > shorts":               "15689",
		"men > suits > blazer":       "3002",
		"men > suits":                "3002",
		"men > blazer":               "3002",
		"men > activewear":           "185101",
		"men > swimwear":             "15690",
		"women > sweaters":           "63866",
		"women > tops":               "53159",
		"women > blouses":            "53159",
		"women > dresses":            "63861",
		"women > jackets":            "63862",
		"women > coats":              "63862",
		"women > vests":              "63862",
		"women > pants > jeans":      "11554",
		"women > jeans":              "11554",
		"women > pants":              "63863",
		"women > skirts":             "63864",
		"women > shorts":             "11555",
		"women > activewear":         "185099",
		"women > swimwear":           "63867",
	}, "57990")
}

// Resolve returns the category id for the given path. It tries the full
// normalized path first, then progressively drops the last segment; when no
// prefix matches it returns the default id. The result is never empty.
func (t *CategoryTable) Resolve(categoryPath string) string {
	key := normalizeCategoryPath(categoryPath)
	if key != "" {
		if id, ok := t.entries[key]; ok {
			return id
		}
		parts := strings.Split(key, " > ")
		for n := len(parts) - 1; n > 0; n-- {
			prefix := strings.Join(parts[:n], " > ")
			if id, ok := t.entries[prefix]; ok {
				return id
			}
		}
	}
	return t.defaultID
}

// DefaultID returns the fallback category id.
func (t *CategoryTable) DefaultID() string {
	return t.defaultID
}

// normalizeCategoryPath lowercases a path and collapses segment spacing so
// "Men>Sweaters" and "men > sweaters" resolve identically.
func normalizeCategoryPath(path string) string {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(path)), ">")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " > ")
}
