package listing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDescriptionHTML_EscapesRecordValues(t *testing.T) {
	r := GarmentRecord{
		Title:          `Cool <script>alert("x")</script> Tee`,
		Description:    "Soft & comfy",
		Brand:          "A&F",
		Size:           "M",
		ConditionNotes: "light wear <b>only</b>",
	}

	out := BuildDescriptionHTML(r)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "Soft &amp; comfy")
	assert.Contains(t, out, "A&amp;F")
	assert.Contains(t, out, "&lt;b&gt;only&lt;/b&gt;")
}

func TestBuildDescriptionHTML_Sections(t *testing.T) {
	chest := "22"
	origin := "Portugal"
	r := GarmentRecord{
		Title:            "Vintage Wool Cardigan",
		Description:      "Cozy knit in great shape.",
		Brand:            "Pendleton",
		Size:             "L",
		Color:            "Brown",
		Material:         "Wool",
		ConditionLabel:   "Excellent",
		ConditionNotes:   "No flaws found.",
		Features:         []string{"Shawl collar", "Leather buttons"},
		Defects:          []string{"small pull at hem"},
		ChestIn:          &chest,
		Origin:           &origin,
		CareInstructions: "Dry clean only",
	}

	out := BuildDescriptionHTML(r)

	assert.Contains(t, out, "Item Details")
	assert.Contains(t, out, "Design Features")
	assert.Contains(t, out, "Shawl collar")
	assert.Contains(t, out, "Measurements (approx.)")
	assert.Contains(t, out, "22&quot;")
	assert.Contains(t, out, "Condition: Excellent")
	assert.Contains(t, out, "small pull at hem")
	assert.Contains(t, out, "Dry clean only")
	assert.Contains(t, out, "Portugal")
}

func TestBuildDescriptionHTML_OmitsEmptySections(t *testing.T) {
	r := GarmentRecord{Title: "Plain Tee", Description: "Basic."}
	out := BuildDescriptionHTML(r)

	assert.NotContains(t, out, "Design Features")
	assert.NotContains(t, out, "Measurements")
	// Condition heading falls back to the default label.
	assert.Contains(t, out, "Condition: Good")
}

func TestBuildDescriptionHTML_CapsFeatureList(t *testing.T) {
	features := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		features = append(features, "Feature "+strings.Repeat("x", i+1))
	}
	r := GarmentRecord{Title: "T", Description: "D", Features: features}

	out := BuildDescriptionHTML(r)
	assert.Equal(t, maxDescriptionFeatures, strings.Count(out, "<li>"))
}
