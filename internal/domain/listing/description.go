package listing

import (
	"fmt"
	"html"
	"strings"
)

const maxDescriptionFeatures = 8

// BuildDescriptionHTML renders the structured listing description: lead
// paragraph, item detail table, design features, measurements and condition
// block. Every record-sourced value is HTML-escaped before it reaches the
// markup, since the description travels inside the listing request.
func BuildDescriptionHTML(r GarmentRecord) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:Arial,Helvetica,sans-serif;max-width:780px;margin:0 auto;color:#333;line-height:1.6">`)
	fmt.Fprintf(&b, `<h2 style="font-size:18px;margin:0 0 12px;font-weight:700">%s</h2>`, html.EscapeString(r.Title))
	fmt.Fprintf(&b, `<p style="font-size:14px;line-height:1.75;margin:0 0 16px">%s</p>`, html.EscapeString(r.Description))

	writeDetailTable(&b, r)
	writeFeatures(&b, r.Features)
	writeMeasurements(&b, r)
	writeCondition(&b, r)

	if r.CareInstructions != "" {
		fmt.Fprintf(&b, `<p style="font-size:12px;margin:12px 0 0"><strong>Care:</strong> %s</p>`,
			html.EscapeString(r.CareInstructions))
	}

	b.WriteString(`</div>`)
	return b.String()
}

func sectionHeading(b *strings.Builder, title string) {
	fmt.Fprintf(b, `<h3 style="font-size:15px;margin:18px 0 8px;border-bottom:1px solid #e0e0e0;padding-bottom:6px">%s</h3>`, title)
}

func writeDetailTable(b *strings.Builder, r GarmentRecord) {
	rows := []struct {
		label string
		value string
	}{
		{"Brand", r.Brand},
		{"Style/Model", optValue(r.StyleName)},
		{"Size", r.Size},
		{"Color", r.Color},
		{"Material", r.Material},
		{"Pattern", optValue(r.Pattern)},
		{"Fit", optValue(r.Fit)},
		{"Sleeve Length", r.SleeveLength},
		{"Neckline", r.Neckline},
		{"Closure", optValue(r.Closure)},
		{"Season", optValue(r.Season)},
		{"Lining", optValue(r.LiningMaterial)},
		{"Made in", optValue(r.Origin)},
	}

	var cells strings.Builder
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(&cells,
			`<tr><td style="padding:6px 12px;border-bottom:1px solid #eee;font-weight:600;width:40%%">%s</td><td style="padding:6px 12px;border-bottom:1px solid #eee">%s</td></tr>`,
			row.label, html.EscapeString(row.value))
	}
	if cells.Len() == 0 {
		return
	}

	sectionHeading(b, "Item Details")
	fmt.Fprintf(b, `<table style="width:100%%;border-collapse:collapse;font-size:13px;margin-bottom:4px">%s</table>`, cells.String())
}

func writeFeatures(b *strings.Builder, features []string) {
	var items strings.Builder
	count := 0
	for _, f := range features {
		v := cleanValue(f)
		if v == "" {
			continue
		}
		fmt.Fprintf(&items, "<li>%s</li>", html.EscapeString(v))
		count++
		if count == maxDescriptionFeatures {
			break
		}
	}
	if count == 0 {
		return
	}

	sectionHeading(b, "Design Features")
	fmt.Fprintf(b, `<ul style="margin:0 0 12px;padding-left:20px;font-size:13px;line-height:1.8">%s</ul>`, items.String())
}

func writeMeasurements(b *strings.Builder, r GarmentRecord) {
	rows := []struct {
		label string
		value *string
	}{
		{"Chest (pit to pit)", r.ChestIn},
		{"Length", r.LengthIn},
		{"Sleeve", r.SleeveIn},
		{"Shoulder", r.ShoulderIn},
		{"Waist", r.WaistIn},
		{"Inseam", r.InseamIn},
	}

	var cells strings.Builder
	for _, row := range rows {
		v := optValue(row.value)
		if v == "" {
			continue
		}
		fmt.Fprintf(&cells,
			`<tr><td style="padding:6px 12px;border-bottom:1px solid #eee;font-weight:600;width:50%%">%s</td><td style="padding:6px 12px;border-bottom:1px solid #eee">%s&quot;</td></tr>`,
			row.label, html.EscapeString(v))
	}
	if cells.Len() == 0 {
		return
	}

	sectionHeading(b, "Measurements (approx.)")
	fmt.Fprintf(b, `<table style="width:100%%;border-collapse:collapse;font-size:13px;margin-bottom:12px">%s</table>`, cells.String())
}

func writeCondition(b *strings.Builder, r GarmentRecord) {
	label := r.ConditionLabel
	if label == "" {
		label = "Good"
	}
	sectionHeading(b, "Condition: "+html.EscapeString(label))
	fmt.Fprintf(b, `<p style="font-size:13px;line-height:1.7;margin:0">%s</p>`, html.EscapeString(r.ConditionNotes))

	var defects []string
	for _, d := range r.Defects {
		if v := cleanValue(d); v != "" {
			defects = append(defects, v)
		}
	}
	if len(defects) > 0 {
		fmt.Fprintf(b, `<p style="font-size:13px;color:#b45309;margin:6px 0 0">Noted: %s</p>`,
			html.EscapeString(strings.Join(defects, ", ")))
	}
}
