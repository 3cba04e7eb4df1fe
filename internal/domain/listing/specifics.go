package listing

import "strings"

// Specific is one marketplace item-specific pair. Names may repeat for
// multi-valued attributes such as Accents and Features.
type Specific struct {
	Name  string
	Value string
}

// classifierRule pairs an ordered keyword set with its resulting label.
// Rules are evaluated top to bottom; the first hit wins, which keeps the
// precedence between Vintage, Activewear and Business auditable.
type classifierRule struct {
	keywords []string
	label    string
}

var styleRules = []classifierRule{
	{keywords: []string{"vintage", "retro", "70s", "80s", "90s"}, label: "Vintage"},
	{keywords: []string{"athletic", "sport", "activewear", "gym"}, label: "Activewear"},
	{keywords: []string{"formal", "suit", "blazer"}, label: "Business"},
}

const defaultStyle = "Casual"

// vocabEntry maps a lowercase substring to its canonical label.
type vocabEntry struct {
	match     string
	canonical string
}

// materialVocab is checked in order; the first substring hit wins.
var materialVocab = []vocabEntry{
	{"cotton", "Cotton"},
	{"denim", "Denim"},
	{"wool", "Wool"},
	{"leather", "Leather"},
	{"polyester", "Polyester"},
	{"nylon", "Nylon"},
	{"silk", "Silk"},
	{"linen", "Linen"},
	{"cashmere", "Cashmere"},
	{"fleece", "Fleece"},
	{"velvet", "Velvet"},
	{"corduroy", "Corduroy"},
	{"tweed", "Tweed"},
	{"flannel", "Flannel"},
	{"canvas", "Canvas"},
	{"suede", "Suede"},
	{"rayon", "Rayon"},
	{"acrylic", "Acrylic"},
	{"viscose", "Viscose"},
}

var colorVocab = []vocabEntry{
	{"black", "Black"},
	{"white", "White"},
	{"gray", "Gray"},
	{"grey", "Gray"},
	{"navy", "Navy"},
	{"blue", "Blue"},
	{"red", "Red"},
	{"green", "Green"},
	{"brown", "Brown"},
	{"beige", "Beige"},
	{"cream", "Cream"},
	{"pink", "Pink"},
	{"purple", "Purple"},
	{"multicolor", "Multicolor"},
	{"multi", "Multicolor"},
}

var plusSizeMarkers = []string{"xxl", "2xl", "3xl", "4xl", "plus"}

var validSleeveLengths = []string{
	"Long Sleeve", "Short Sleeve", "3/4 Sleeve", "Sleeveless", "Cap Sleeve",
}

var validNecklines = []string{
	"Crew Neck", "V-Neck", "Round Neck", "Scoop Neck", "Turtleneck",
	"Mock Neck", "Collared", "Hooded", "Polo", "Henley", "Boat Neck",
	"Cowl Neck", "Square Neck", "Off Shoulder", "Strapless",
}

// DeriveSpecifics turns a garment record into the ordered item-specific
// pairs submitted with a listing. The function is pure: it performs no I/O
// and the same record always yields the same pairs. Pairs whose value ends
// up empty are dropped.
func DeriveSpecifics(r GarmentRecord) []Specific {
	brand := strings.TrimSpace(r.Brand)
	if brand == "" {
		brand = "Unknown"
	}
	size := strings.TrimSpace(r.Size)
	if size == "" {
		size = "See Description"
	}

	specs := []Specific{
		{"Brand", brand},
		{"Size", size},
		{"Color", canonicalColor(r.Color)},
		{"Department", department(r.Gender)},
		{"Type", garmentType(r.Category)},
		{"Style", styleLabel(r)},
		{"Sleeve Length", validateClosedSet(r.SleeveLength, validSleeveLengths, "Long Sleeve")},
		{"Outer Shell Material", canonicalMaterial(r.Material)},
		{"Size Type", sizeType(r.Size)},
		{"Vintage", yesNo(r.Vintage)},
	}

	if neckline := validateClosedSet(r.Neckline, validNecklines, ""); neckline != "" {
		specs = append(specs, Specific{"Neckline", neckline})
	}

	optional := []struct {
		name  string
		value *string
	}{
		{"Pattern", r.Pattern},
		{"Closure", r.Closure},
		{"Fit", r.Fit},
		{"Occasion", r.Occasion},
		{"Season", r.Season},
		{"Lining Material", r.LiningMaterial},
		{"Decade", r.VintageEra},
		{"Fabric Type", r.FabricType},
		{"Theme", r.Theme},
		{"Collar Style", r.CollarStyle},
		{"Cuff Style", r.CuffStyle},
		{"Sleeve Type", r.SleeveType},
		{"Rise", r.Rise},
		{"Leg Style", r.LegStyle},
		{"Jacket/Coat Length", r.JacketLength},
		{"Dress Length", r.DressLength},
		{"Character", r.Character},
		{"Performance/Activity", r.PerformanceActivity},
		{"Insulation Material", r.InsulationMaterial},
		{"Garment Care", r.GarmentCare},
	}
	for _, o := range optional {
		if v := optValue(o.value); v != "" {
			specs = append(specs, Specific{o.name, v})
		}
	}

	for _, a := range r.Accents {
		if v := cleanValue(a); v != "" {
			specs = append(specs, Specific{"Accents", v})
		}
	}
	for _, f := range r.Features {
		if v := cleanValue(f); v != "" {
			specs = append(specs, Specific{"Features", v})
		}
	}

	if r.GraphicPrint {
		specs = append(specs, Specific{"Graphic Print", "Yes"})
	}
	if r.Handmade {
		specs = append(specs, Specific{"Handmade", "Yes"})
	}

	measurements := []struct {
		name  string
		value *string
	}{
		{"Chest Size", r.ChestIn},
		{"Waist Size", r.WaistIn},
		{"Inseam", r.InseamIn},
	}
	for _, m := range measurements {
		if v := optValue(m.value); v != "" {
			specs = append(specs, Specific{m.name, v + " in"})
		}
	}

	if origin := optValue(r.Origin); origin != "" {
		specs = append(specs, Specific{"Country/Region of Manufacture", origin})
	}

	// Final sweep: no pair leaves with an empty value.
	out := specs[:0]
	for _, s := range specs {
		if s.Value != "" {
			out = append(out, s)
		}
	}
	return out
}

// department maps gender to the marketplace department enum.
func department(gender string) string {
	switch gender {
	case "Men", "Women", "Boys", "Girls":
		return gender
	default:
		return "Unisex"
	}
}

// garmentType is the last segment of the category path; the whole path when
// it has no separators, or "Clothing" when empty.
func garmentType(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return "Clothing"
	}
	if idx := strings.LastIndex(category, ">"); idx >= 0 {
		return strings.TrimSpace(category[idx+1:])
	}
	return category
}

// styleLabel runs the ordered style classifier over the record's keywords.
func styleLabel(r GarmentRecord) string {
	if r.Vintage {
		return "Vintage"
	}
	var sb strings.Builder
	for _, d := range r.StyleDetails {
		sb.WriteString(strings.ToLower(d))
		sb.WriteByte(' ')
	}
	sb.WriteString(strings.ToLower(r.Category))
	haystack := sb.String()

	for _, rule := range styleRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.label
			}
		}
	}
	return defaultStyle
}

// canonicalMaterial normalizes a fabric composition string to a single
// canonical material. Unmatched non-empty input passes through untouched.
func canonicalMaterial(material string) string {
	m := strings.ToLower(strings.TrimSpace(material))
	for _, e := range materialVocab {
		if strings.Contains(m, e.match) {
			return e.canonical
		}
	}
	if material != "" {
		return material
	}
	return "Cotton"
}

// canonicalColor normalizes a color to the marketplace color vocabulary.
func canonicalColor(color string) string {
	c := strings.ToLower(strings.TrimSpace(color))
	for _, e := range colorVocab {
		if strings.Contains(c, e.match) {
			return e.canonical
		}
	}
	if color != "" {
		return color
	}
	return "Black"
}

// sizeType reports "Plus" when the size tag carries a plus-size marker.
func sizeType(size string) string {
	s := strings.ToLower(size)
	for _, marker := range plusSizeMarkers {
		if strings.Contains(s, marker) {
			return "Plus"
		}
	}
	return "Regular"
}

// validateClosedSet returns the value when it belongs to the allowed set,
// otherwise the fallback.
func validateClosedSet(value string, allowed []string, fallback string) string {
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return fallback
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// cleanValue filters sentinel placeholders out of multi-valued fields.
func cleanValue(s string) string {
	switch strings.TrimSpace(s) {
	case "", "null", "None", "none", "NULL":
		return ""
	}
	return strings.TrimSpace(s)
}
