package listing

import "strings"

// conditionIDs maps the 1-5 condition score to the marketplace condition id.
// 4 and 5 share "3000": the marketplace has no separate "Fair" id for
// clothing categories.
var conditionIDs = map[int]string{
	1: "1000",
	2: "1500",
	3: "2750",
	4: "3000",
	5: "3000",
}

// defaultConditionID is used for out-of-range scores.
const defaultConditionID = "3000"

// ConditionID maps a condition score to the marketplace condition id.
func ConditionID(score int) string {
	if id, ok := conditionIDs[score]; ok {
		return id
	}
	return defaultConditionID
}

// MaxTitleLength is the marketplace title cap.
const MaxTitleLength = 80

// TruncateTitle caps a title at the marketplace limit, cutting on rune
// boundaries so a multi-byte character is never split. Truncation is
// idempotent: re-truncating an already capped title is a no-op.
func TruncateTitle(title string) string {
	if len(title) <= MaxTitleLength {
		return title
	}
	runes := []rune(title)
	if len(runes) <= MaxTitleLength {
		return title
	}
	return string(runes[:MaxTitleLength])
}

// ShippingWeight is the package weight in whole pounds and ounces.
type ShippingWeight struct {
	PoundsMajor int
	OuncesMinor int
}

// categoryWeights maps category keywords to typical shipped weights.
// Checked in order; the first keyword found in the category path wins.
var categoryWeights = []struct {
	keyword string
	weight  ShippingWeight
}{
	{"coats", ShippingWeight{3, 0}},
	{"jackets", ShippingWeight{2, 8}},
	{"sweaters", ShippingWeight{2, 0}},
	{"jeans", ShippingWeight{2, 0}},
	{"suits", ShippingWeight{2, 8}},
	{"dresses", ShippingWeight{1, 8}},
	{"pants", ShippingWeight{1, 8}},
}

// defaultShippingWeight covers everything the table does not.
var defaultShippingWeight = ShippingWeight{1, 0}

// ShippingWeightFor looks up the shipping weight for a category path,
// falling back to the default for unmatched categories.
func ShippingWeightFor(categoryPath string) ShippingWeight {
	path := strings.ToLower(categoryPath)
	for _, cw := range categoryWeights {
		if strings.Contains(path, cw.keyword) {
			return cw.weight
		}
	}
	return defaultShippingWeight
}
