package listing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrMissingRecord indicates a publish was attempted without an analyzed record
	ErrMissingRecord = errors.New("listing: garment record is required")
	// ErrMissingImages indicates a publish was attempted without any images
	ErrMissingImages = errors.New("listing: at least one image is required")
	// ErrInvalidConditionScore indicates a condition score outside the 1-5 scale
	ErrInvalidConditionScore = errors.New("listing: condition score must be between 1 and 5")
	// ErrMissingPrice indicates a publish was attempted without a positive price
	ErrMissingPrice = errors.New("listing: a positive price is required")
)

// MaxPhotos is the maximum number of photos a listing may carry.
const MaxPhotos = 12

// GarmentRecord is the normalized description of a garment produced by the
// upstream vision analysis. Optional descriptors are pointers so that absence
// is explicit; the deriver never sees sentinel strings like "null".
type GarmentRecord struct {
	// Title is the SEO listing title suggested upstream
	Title string `json:"title"`
	// Brand is the brand name read from the garment tag
	Brand string `json:"brand"`
	// StyleName is the specific product line or model, when identifiable
	StyleName *string `json:"style_name"`
	// SubBrand is a secondary line under the main brand
	SubBrand *string `json:"sub_brand"`
	// Category is the hierarchical path, e.g. "Men > Sweaters > Cardigan"
	Category string `json:"category"`
	// Gender is one of Men, Women, Boys, Girls (anything else maps to Unisex)
	Gender string `json:"gender"`
	// Size is the exact size tag text
	Size string `json:"size"`
	// Color is the dominant color
	Color string `json:"color"`
	// Material is the fabric composition from the care label
	Material string `json:"material"`
	// StyleDetails are free-form descriptors used by the style classifier
	StyleDetails []string `json:"style_details"`

	SleeveLength string  `json:"sleeve_length"`
	Neckline     string  `json:"neckline"`
	Pattern      *string `json:"pattern"`
	Closure      *string `json:"closure"`
	Fit          *string `json:"fit"`
	Occasion     *string `json:"occasion"`
	Season       *string `json:"season"`

	LiningMaterial      *string `json:"lining_material"`
	FabricType          *string `json:"fabric_type"`
	Theme               *string `json:"theme"`
	CollarStyle         *string `json:"collar_style"`
	CuffStyle           *string `json:"cuff_style"`
	SleeveType          *string `json:"sleeve_type"`
	Rise                *string `json:"rise"`
	LegStyle            *string `json:"leg_style"`
	JacketLength        *string `json:"jacket_length"`
	DressLength         *string `json:"dress_length"`
	Character           *string `json:"character"`
	PerformanceActivity *string `json:"performance_activity"`
	InsulationMaterial  *string `json:"insulation_material"`
	GarmentCare         *string `json:"garment_care"`

	// Accents are visible accent elements; one item-specific pair per entry
	Accents []string `json:"accents"`
	// Features are notable construction features; one pair per entry
	Features []string `json:"features"`

	GraphicPrint bool `json:"graphic_print"`
	Handmade     bool `json:"handmade"`
	Vintage      bool `json:"vintage"`
	TagsPresent  bool `json:"tags_present"`

	// VintageEra is the decade, e.g. "90s", when Vintage is set
	VintageEra *string `json:"vintage_era"`

	// ConditionScore grades condition: 1=NWT 2=Like New 3=Excellent 4=Good 5=Fair
	ConditionScore int    `json:"condition_score"`
	ConditionLabel string `json:"condition_label"`
	ConditionNotes string `json:"condition_notes"`
	// Defects lists detected flaws, surfaced verbatim in the description
	Defects []string `json:"defects_detected"`

	Description      string  `json:"description"`
	CareInstructions string  `json:"care_instructions"`
	Origin           *string `json:"origin"`

	// Measurements in inches, supplied by the seller at publish time
	ChestIn    *string `json:"m_chest"`
	WaistIn    *string `json:"m_waist"`
	InseamIn   *string `json:"m_inseam"`
	LengthIn   *string `json:"m_length"`
	SleeveIn   *string `json:"m_sleeve"`
	ShoulderIn *string `json:"m_shoulder"`

	SuggestedPriceLow  decimal.Decimal `json:"suggested_price_low"`
	SuggestedPriceHigh decimal.Decimal `json:"suggested_price_high"`
	PriceReasoning     string          `json:"price_reasoning"`

	// Confidence is the upstream analysis confidence: low, medium, high
	Confidence string `json:"confidence"`
}

// Validate checks the record invariants required before publishing.
func (r *GarmentRecord) Validate() error {
	if r.ConditionScore < 1 || r.ConditionScore > 5 {
		return ErrInvalidConditionScore
	}
	return nil
}

// Overrides carries the caller-supplied corrections applied at publish time.
// Only the allow-listed fields below can replace record values; a nil pointer
// or empty string leaves the record untouched.
type Overrides struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	Brand        string `json:"brand"`
	StyleName    string `json:"style_name"`
	Gender       string `json:"gender"`
	Size         string `json:"size"`
	Color        string `json:"color"`
	Material     string `json:"material"`
	SleeveLength string `json:"sleeve_length"`
	Neckline     string `json:"neckline"`
	Category     string `json:"category"`
	Origin       string `json:"origin"`

	Pattern             string `json:"pattern"`
	Closure             string `json:"closure"`
	Fit                 string `json:"fit"`
	Occasion            string `json:"occasion"`
	Season              string `json:"season"`
	LiningMaterial      string `json:"lining_material"`
	FabricType          string `json:"fabric_type"`
	Theme               string `json:"theme"`
	CollarStyle         string `json:"collar_style"`
	CuffStyle           string `json:"cuff_style"`
	SleeveType          string `json:"sleeve_type"`
	Rise                string `json:"rise"`
	LegStyle            string `json:"leg_style"`
	JacketLength        string `json:"jacket_length"`
	DressLength         string `json:"dress_length"`
	Character           string `json:"character"`
	PerformanceActivity string `json:"performance_activity"`
	InsulationMaterial  string `json:"insulation_material"`
	GarmentCare         string `json:"garment_care"`

	ChestIn    string `json:"m_chest"`
	WaistIn    string `json:"m_waist"`
	InseamIn   string `json:"m_inseam"`
	LengthIn   string `json:"m_length"`
	SleeveIn   string `json:"m_sleeve"`
	ShoulderIn string `json:"m_shoulder"`

	StyleDetails *[]string `json:"style_details"`
	Accents      *[]string `json:"accents"`
	Features     *[]string `json:"features"`

	Vintage      *bool `json:"vintage"`
	TagsPresent  *bool `json:"tags_present"`
	GraphicPrint *bool `json:"graphic_print"`
	Handmade     *bool `json:"handmade"`

	CareInstructions string `json:"care_instructions"`
}

// Apply returns a copy of the record with the overrides merged in,
// field by field. The input record is never mutated, so concurrent
// publishes over the same draft stay isolated.
func (o *Overrides) Apply(r GarmentRecord) GarmentRecord {
	if o == nil {
		return r
	}

	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setOpt := func(dst **string, v string) {
		if v != "" {
			s := v
			*dst = &s
		}
	}

	setStr(&r.Title, o.Title)
	setStr(&r.Description, o.Description)
	setStr(&r.Brand, o.Brand)
	setOpt(&r.StyleName, o.StyleName)
	setStr(&r.Gender, o.Gender)
	setStr(&r.Size, o.Size)
	setStr(&r.Color, o.Color)
	setStr(&r.Material, o.Material)
	setStr(&r.SleeveLength, o.SleeveLength)
	setStr(&r.Neckline, o.Neckline)
	setStr(&r.Category, o.Category)
	setOpt(&r.Origin, o.Origin)

	setOpt(&r.Pattern, o.Pattern)
	setOpt(&r.Closure, o.Closure)
	setOpt(&r.Fit, o.Fit)
	setOpt(&r.Occasion, o.Occasion)
	setOpt(&r.Season, o.Season)
	setOpt(&r.LiningMaterial, o.LiningMaterial)
	setOpt(&r.FabricType, o.FabricType)
	setOpt(&r.Theme, o.Theme)
	setOpt(&r.CollarStyle, o.CollarStyle)
	setOpt(&r.CuffStyle, o.CuffStyle)
	setOpt(&r.SleeveType, o.SleeveType)
	setOpt(&r.Rise, o.Rise)
	setOpt(&r.LegStyle, o.LegStyle)
	setOpt(&r.JacketLength, o.JacketLength)
	setOpt(&r.DressLength, o.DressLength)
	setOpt(&r.Character, o.Character)
	setOpt(&r.PerformanceActivity, o.PerformanceActivity)
	setOpt(&r.InsulationMaterial, o.InsulationMaterial)
	setOpt(&r.GarmentCare, o.GarmentCare)

	setOpt(&r.ChestIn, o.ChestIn)
	setOpt(&r.WaistIn, o.WaistIn)
	setOpt(&r.InseamIn, o.InseamIn)
	setOpt(&r.LengthIn, o.LengthIn)
	setOpt(&r.SleeveIn, o.SleeveIn)
	setOpt(&r.ShoulderIn, o.ShoulderIn)

	if o.StyleDetails != nil {
		r.StyleDetails = append([]string(nil), (*o.StyleDetails)...)
	}
	if o.Accents != nil {
		r.Accents = append([]string(nil), (*o.Accents)...)
	}
	if o.Features != nil {
		r.Features = append([]string(nil), (*o.Features)...)
	}

	if o.Vintage != nil {
		r.Vintage = *o.Vintage
	}
	if o.TagsPresent != nil {
		r.TagsPresent = *o.TagsPresent
	}
	if o.GraphicPrint != nil {
		r.GraphicPrint = *o.GraphicPrint
	}
	if o.Handmade != nil {
		r.Handmade = *o.Handmade
	}

	setStr(&r.CareInstructions, o.CareInstructions)

	return r
}

// optValue returns the dereferenced value of an optional field after
// filtering sentinel placeholders that occasionally leak in from upstream.
func optValue(s *string) string {
	if s == nil {
		return ""
	}
	switch *s {
	case "", "null", "None", "none", "NULL":
		return ""
	}
	return *s
}
