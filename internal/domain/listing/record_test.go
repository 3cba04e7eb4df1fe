package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGarmentRecord_Validate(t *testing.T) {
	for score := 1; score <= 5; score++ {
		r := GarmentRecord{ConditionScore: score}
		assert.NoError(t, r.Validate(), "score %d", score)
	}
	for _, score := range []int{0, 6, -3} {
		r := GarmentRecord{ConditionScore: score}
		assert.ErrorIs(t, r.Validate(), ErrInvalidConditionScore, "score %d", score)
	}
}

func TestOverrides_Apply(t *testing.T) {
	pattern := "Striped"
	base := GarmentRecord{
		Title:    "Original Title",
		Brand:    "Nike",
		Size:     "M",
		Pattern:  &pattern,
		Accents:  []string{"Logo"},
		Vintage:  false,
		Category: "Men > Shirts",
	}

	vintage := true
	features := []string{"Drawstring hood"}
	o := &Overrides{
		Title:    "Better Title",
		Size:     "L",
		Pattern:  "Solid",
		Vintage:  &vintage,
		Features: &features,
		ChestIn:  "23",
	}

	got := o.Apply(base)

	assert.Equal(t, "Better Title", got.Title)
	assert.Equal(t, "L", got.Size)
	require.NotNil(t, got.Pattern)
	assert.Equal(t, "Solid", *got.Pattern)
	assert.True(t, got.Vintage)
	assert.Equal(t, []string{"Drawstring hood"}, got.Features)
	require.NotNil(t, got.ChestIn)
	assert.Equal(t, "23", *got.ChestIn)

	// Fields without an override keep their record values.
	assert.Equal(t, "Nike", got.Brand)
	assert.Equal(t, "Men > Shirts", got.Category)
	assert.Equal(t, []string{"Logo"}, got.Accents)
}

func TestOverrides_ApplyDoesNotMutateInput(t *testing.T) {
	pattern := "Striped"
	base := GarmentRecord{
		Title:   "Original",
		Pattern: &pattern,
		Accents: []string{"Logo"},
	}

	accents := []string{"Embroidered"}
	o := &Overrides{Title: "Changed", Pattern: "Solid", Accents: &accents}
	got := o.Apply(base)

	assert.Equal(t, "Original", base.Title)
	assert.Equal(t, "Striped", *base.Pattern)
	assert.Equal(t, []string{"Logo"}, base.Accents)

	// The applied copy owns its slice; mutating the source does not leak in.
	accents[0] = "mutated"
	assert.Equal(t, []string{"Embroidered"}, got.Accents)
}

func TestOverrides_NilAndEmptyAreNoOps(t *testing.T) {
	base := GarmentRecord{Title: "Keep", Brand: "Levi's", Vintage: true}

	var o *Overrides
	assert.Equal(t, base, o.Apply(base))

	empty := &Overrides{}
	got := empty.Apply(base)
	assert.Equal(t, base, got)
}

func TestOptValue(t *testing.T) {
	assert.Equal(t, "", optValue(nil))
	for _, sentinel := range []string{"", "null", "None", "none", "NULL"} {
		s := sentinel
		assert.Equal(t, "", optValue(&s), "sentinel %q", sentinel)
	}
	v := "Wool"
	assert.Equal(t, "Wool", optValue(&v))
}
