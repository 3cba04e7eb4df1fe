package export

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resale/backend/internal/domain/listing"
)

func sampleInput() Input {
	return Input{
		Record: listing.GarmentRecord{
			Title:          "Vintage Pendleton Wool Cardigan Brown L",
			Description:    "Cozy shawl collar cardigan.",
			Brand:          "Pendleton",
			Category:       "Men > Sweaters > Cardigan",
			Size:           "L",
			Color:          "Brown",
			Material:       "Wool",
			Vintage:        true,
			ConditionScore: 3,
			ConditionNotes: "No flaws found.",
		},
		Price:     decimal.NewFromInt(40),
		PhotoURLs: []string{"https://img.example/1.jpg", "https://img.example/2.jpg"},
	}
}

func TestRegistry_Platforms(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"depop", "facebook", "mercari", "poshmark"}, r.Platforms())
}

func TestRegistry_UnknownPlatform(t *testing.T) {
	_, err := DefaultRegistry().Format("etsy", sampleInput())
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestRegistry_RequiresPrice(t *testing.T) {
	in := sampleInput()
	in.Price = decimal.Zero
	_, err := DefaultRegistry().Format("mercari", in)
	assert.ErrorIs(t, err, ErrMissingPrice)
}

func TestPoshmark_GrossesUpForFee(t *testing.T) {
	got, err := DefaultRegistry().Format("poshmark", sampleInput())
	require.NoError(t, err)

	// Netting $40 after the 20% fee requires listing at $50.
	assert.Equal(t, "50", got.Price.String())
	assert.Equal(t, "Excellent Used Condition", got.Condition)
	assert.Equal(t, "Pendleton", got.Fields["brand"])
	assert.LessOrEqual(t, len(got.Title), 80)
}

func TestPoshmark_GrossUpRoundsUp(t *testing.T) {
	in := sampleInput()
	in.Price = decimal.NewFromInt(25)
	got, err := DefaultRegistry().Format("poshmark", in)
	require.NoError(t, err)

	// 25 / 0.8 = 31.25, rounded up to a whole dollar.
	assert.Equal(t, "32", got.Price.String())
}

func TestMercari_Payload(t *testing.T) {
	got, err := DefaultRegistry().Format("mercari", sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "40", got.Price.String())
	assert.Equal(t, "Good", got.Condition)
	assert.Equal(t, "buyer", got.Fields["shipping_payer"])
	assert.LessOrEqual(t, len(got.Title), mercariTitleLimit)
}

func TestDepop_HashtagSuffix(t *testing.T) {
	got, err := DefaultRegistry().Format("depop", sampleInput())
	require.NoError(t, err)

	require.NotEmpty(t, got.Tags)
	assert.Equal(t, "#pendleton", got.Tags[0])
	assert.Contains(t, got.Tags, "#vintage")
	assert.LessOrEqual(t, len(got.Tags), depopMaxHashtags)
	for _, tag := range got.Tags {
		assert.True(t, strings.HasPrefix(tag, "#"))
	}
	assert.True(t, strings.HasSuffix(got.Description, strings.Join(got.Tags, " ")))
}

func TestFacebook_LocalDiscount(t *testing.T) {
	got, err := DefaultRegistry().Format("facebook", sampleInput())
	require.NoError(t, err)

	// 40 discounted 10% is 36, floored to a whole dollar.
	assert.Equal(t, "36", got.Price.String())
	assert.Equal(t, "Used - Good", got.Condition)
	assert.Equal(t, "Clothing & Accessories", got.Fields["category"])
}

func TestFacebook_PriceFloor(t *testing.T) {
	in := sampleInput()
	in.Price = decimal.NewFromInt(1)
	got, err := DefaultRegistry().Format("facebook", in)
	require.NoError(t, err)
	assert.Equal(t, "1", got.Price.String())
}

func TestConditionRemaps(t *testing.T) {
	tests := []struct {
		score    int
		poshmark string
		mercari  string
		depop    string
		facebook string
	}{
		{1, "NWT", "New", "Brand new", "New"},
		{2, "Like New", "Like New", "Used - Excellent", "Used - Like New"},
		{5, "Fair Condition", "Fair", "Used - Fair", "Used - Fair"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.poshmark, poshmarkCondition(tt.score))
		assert.Equal(t, tt.mercari, mercariCondition(tt.score))
		assert.Equal(t, tt.depop, depopCondition(tt.score))
		assert.Equal(t, tt.facebook, facebookCondition(tt.score))
	}
}

func TestFormat_Deterministic(t *testing.T) {
	reg := DefaultRegistry()
	in := sampleInput()
	for _, platform := range reg.Platforms() {
		first, err := reg.Format(platform, in)
		require.NoError(t, err)
		second, err := reg.Format(platform, in)
		require.NoError(t, err)
		assert.Equal(t, first, second, "platform %s", platform)
	}
}

func TestFormat_DoesNotAliasPhotoSlice(t *testing.T) {
	in := sampleInput()
	got, err := DefaultRegistry().Format("mercari", in)
	require.NoError(t, err)

	in.PhotoURLs[0] = "mutated"
	assert.Equal(t, "https://img.example/1.jpg", got.PhotoURLs[0])
}
