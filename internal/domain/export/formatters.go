package export

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/resale/backend/internal/domain/listing"
)

// ---------------------------------------------------------------------------
// Poshmark
// ---------------------------------------------------------------------------

// poshmarkFeeRate is the platform's flat commission on sales over $15.
var poshmarkFeeRate = decimal.NewFromFloat(0.20)

type poshmarkFormatter struct{}

// NewPoshmarkFormatter returns the Poshmark formatter. The listing price is
// grossed up so the seller nets the requested amount after the platform fee.
func NewPoshmarkFormatter() Formatter { return &poshmarkFormatter{} }

func (f *poshmarkFormatter) Platform() string { return "poshmark" }

func (f *poshmarkFormatter) Format(in Input) (Payload, error) {
	r := in.Record
	gross := in.Price.Div(decimal.NewFromInt(1).Sub(poshmarkFeeRate)).RoundUp(0)

	fields := map[string]string{
		"brand":    r.Brand,
		"size":     r.Size,
		"category": r.Category,
		"color":    r.Color,
	}
	if r.TagsPresent && r.ConditionScore == 1 {
		fields["nwt"] = "true"
	}

	return Payload{
		Platform:    f.Platform(),
		Title:       listing.TruncateTitle(r.Title),
		Description: plainDescription(r),
		Price:       gross,
		Currency:    "USD",
		Condition:   poshmarkCondition(r.ConditionScore),
		PhotoURLs:   copyURLs(in.PhotoURLs),
		Fields:      fields,
	}, nil
}

func poshmarkCondition(score int) string {
	switch score {
	case 1:
		return "NWT"
	case 2:
		return "Like New"
	case 3:
		return "Excellent Used Condition"
	case 4:
		return "Good Used Condition"
	default:
		return "Fair Condition"
	}
}

// ---------------------------------------------------------------------------
// Mercari
// ---------------------------------------------------------------------------

const mercariTitleLimit = 80

type mercariFormatter struct{}

// NewMercariFormatter returns the Mercari formatter.
func NewMercariFormatter() Formatter { return &mercariFormatter{} }

func (f *mercariFormatter) Platform() string { return "mercari" }

func (f *mercariFormatter) Format(in Input) (Payload, error) {
	r := in.Record
	return Payload{
		Platform:    f.Platform(),
		Title:       truncate(r.Title, mercariTitleLimit),
		Description: plainDescription(r),
		Price:       in.Price.RoundUp(0),
		Currency:    "USD",
		Condition:   mercariCondition(r.ConditionScore),
		PhotoURLs:   copyURLs(in.PhotoURLs),
		Fields: map[string]string{
			"brand":          r.Brand,
			"size":           r.Size,
			"color":          r.Color,
			"shipping_payer": "buyer",
			"smart_pricing":  "false",
		},
	}, nil
}

func mercariCondition(score int) string {
	switch score {
	case 1:
		return "New"
	case 2:
		return "Like New"
	case 3, 4:
		return "Good"
	default:
		return "Fair"
	}
}

// ---------------------------------------------------------------------------
// Depop
// ---------------------------------------------------------------------------

const depopMaxHashtags = 5

type depopFormatter struct{}

// NewDepopFormatter returns the Depop formatter. Depop listings lean on
// hashtags for discovery, so the description ends with a tag block built from
// the record's brand, style and category terms.
func NewDepopFormatter() Formatter { return &depopFormatter{} }

func (f *depopFormatter) Platform() string { return "depop" }

func (f *depopFormatter) Format(in Input) (Payload, error) {
	r := in.Record
	tags := depopHashtags(r)

	var desc strings.Builder
	desc.WriteString(plainDescription(r))
	if len(tags) > 0 {
		desc.WriteString("\n\n")
		desc.WriteString(strings.Join(tags, " "))
	}

	return Payload{
		Platform:    f.Platform(),
		Title:       listing.TruncateTitle(r.Title),
		Description: desc.String(),
		Price:       in.Price,
		Currency:    "USD",
		Condition:   depopCondition(r.ConditionScore),
		PhotoURLs:   copyURLs(in.PhotoURLs),
		Tags:        tags,
	}, nil
}

func depopHashtags(r listing.GarmentRecord) []string {
	seen := make(map[string]struct{})
	var tags []string
	add := func(raw string) {
		if len(tags) == depopMaxHashtags {
			return
		}
		t := hashtagify(raw)
		if t == "" {
			return
		}
		if _, dup := seen[t]; dup {
			return
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}

	add(r.Brand)
	if r.Vintage {
		add("vintage")
	}
	for _, d := range r.StyleDetails {
		add(d)
	}
	for _, part := range strings.Split(r.Category, ">") {
		add(part)
	}
	return tags
}

// hashtagify lowercases a term and strips everything but letters and digits.
func hashtagify(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "#" + b.String()
}

func depopCondition(score int) string {
	switch score {
	case 1:
		return "Brand new"
	case 2, 3:
		return "Used - Excellent"
	case 4:
		return "Used - Good"
	default:
		return "Used - Fair"
	}
}

// ---------------------------------------------------------------------------
// Facebook Marketplace
// ---------------------------------------------------------------------------

// facebookDiscountRate undercuts the national-market price for local pickup.
var facebookDiscountRate = decimal.NewFromFloat(0.10)

type facebookFormatter struct{}

// NewFacebookFormatter returns the Facebook Marketplace formatter. The price
// is discounted roughly ten percent since local listings skip shipping.
func NewFacebookFormatter() Formatter { return &facebookFormatter{} }

func (f *facebookFormatter) Platform() string { return "facebook" }

func (f *facebookFormatter) Format(in Input) (Payload, error) {
	r := in.Record
	price := in.Price.Mul(decimal.NewFromInt(1).Sub(facebookDiscountRate)).RoundDown(0)
	if price.LessThan(decimal.NewFromInt(1)) {
		price = decimal.NewFromInt(1)
	}

	return Payload{
		Platform:    f.Platform(),
		Title:       listing.TruncateTitle(r.Title),
		Description: plainDescription(r),
		Price:       price,
		Currency:    "USD",
		Condition:   facebookCondition(r.ConditionScore),
		PhotoURLs:   copyURLs(in.PhotoURLs),
		Fields: map[string]string{
			"category":     "Clothing & Accessories",
			"availability": "in stock",
			"brand":        r.Brand,
			"size":         r.Size,
		},
	}, nil
}

func facebookCondition(score int) string {
	switch score {
	case 1:
		return "New"
	case 2:
		return "Used - Like New"
	case 3, 4:
		return "Used - Good"
	default:
		return "Used - Fair"
	}
}

// ---------------------------------------------------------------------------
// shared rendering
// ---------------------------------------------------------------------------

// plainDescription renders a text-only description for platforms without HTML
// support: lead text, key attributes, measurements and condition notes.
func plainDescription(r listing.GarmentRecord) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(r.Description))

	var attrs []string
	appendAttr := func(label, value string) {
		if value != "" {
			attrs = append(attrs, label+": "+value)
		}
	}
	appendAttr("Brand", r.Brand)
	appendAttr("Size", r.Size)
	appendAttr("Color", r.Color)
	appendAttr("Material", r.Material)
	if len(attrs) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(attrs, "\n"))
	}

	var meas []string
	appendMeas := func(label string, v *string) {
		if v != nil && *v != "" {
			meas = append(meas, label+": "+*v+`"`)
		}
	}
	appendMeas("Chest", r.ChestIn)
	appendMeas("Length", r.LengthIn)
	appendMeas("Waist", r.WaistIn)
	appendMeas("Inseam", r.InseamIn)
	if len(meas) > 0 {
		b.WriteString("\n\nMeasurements:\n")
		b.WriteString(strings.Join(meas, "\n"))
	}

	if r.ConditionNotes != "" {
		b.WriteString("\n\nCondition: ")
		b.WriteString(r.ConditionNotes)
	}
	return b.String()
}
