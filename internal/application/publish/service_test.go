package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/resale/backend/internal/domain/listing"
	"github.com/resale/backend/internal/domain/session"
	"github.com/resale/backend/internal/infrastructure/ebay"
)

type fakeSuggester struct {
	id  string
	err error
}

func (f *fakeSuggester) SuggestCategory(_ context.Context, _ string) (string, error) {
	return f.id, f.err
}

type fakePolicies struct {
	policies *ebay.SellerPolicies
	err      error
}

func (f *fakePolicies) FetchPolicies(_ context.Context) (*ebay.SellerPolicies, error) {
	return f.policies, f.err
}

type fakeSubmitter struct {
	result *ebay.ListingResult
	err    error
	item   ebay.Item
	calls  int
}

func (f *fakeSubmitter) SubmitListing(_ context.Context, item ebay.Item) (*ebay.ListingResult, error) {
	f.item = item
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeUploader struct {
	urls []string
	err  error
}

func (f *fakeUploader) UploadAll(_ context.Context, _ []string) ([]string, error) {
	return f.urls, f.err
}

func acceptedResult() *ebay.ListingResult {
	return &ebay.ListingResult{
		Status:     ebay.StatusAccepted,
		ItemID:     "110551234567",
		ListingURL: "https://www.ebay.com/itm/110551234567",
	}
}

func testDraft() *session.Draft {
	draft := session.NewDraft(listing.GarmentRecord{
		Title:          "Pendleton Wool Cardigan Sweater Mens XXL Brown",
		Brand:          "Pendleton",
		Category:       "Men > Sweaters > Cardigan",
		Gender:         "Men",
		Size:           "XXL",
		Color:          "Brown",
		Material:       "Wool",
		Accents:        []string{"Toggle buttons", "Shawl collar"},
		ConditionScore: 3,
		ConditionNotes: "Light pilling on cuffs",
	}, time.Now())
	draft.ImagePaths = []string{"/tmp/a.jpg", "/tmp/b.jpg"}
	return draft
}

func newTestService(suggester *fakeSuggester, policies *fakePolicies, submitter *fakeSubmitter, uploader *fakeUploader, t *testing.T) *Service {
	svc := NewService(suggester, policies, submitter, uploader, zaptest.NewLogger(t))
	cfg := DefaultServiceConfig()
	cfg.PostalCode = "97201"
	svc.SetConfig(cfg)
	return svc
}

func TestPublish_HappyPath(t *testing.T) {
	submitter := &fakeSubmitter{result: acceptedResult()}
	svc := newTestService(
		&fakeSuggester{id: "11484"},
		&fakePolicies{policies: &ebay.SellerPolicies{
			FulfillmentPolicyID: "ship-1",
			ReturnPolicyID:      "ret-1",
			PaymentPolicyID:     "pay-1",
		}},
		submitter,
		&fakeUploader{urls: []string{"https://pics.example/1.jpg", "https://pics.example/2.jpg"}},
		t,
	)

	result, err := svc.Publish(context.Background(), Request{
		Draft:     testDraft(),
		Price:     decimal.NewFromInt(45),
		BestOffer: true,
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "110551234567", result.ItemID)
	assert.Equal(t, "https://www.ebay.com/itm/110551234567", result.ListingURL)
	assert.Equal(t, "11484", result.CategoryID)
	assert.False(t, result.ZeroPhotos)

	item := submitter.item
	assert.Equal(t, "FixedPriceItem", item.ListingType)
	assert.Equal(t, "45.00", item.StartPrice.Value)
	assert.Equal(t, "USD", item.StartPrice.CurrencyID)
	assert.Equal(t, "2750", item.ConditionID)
	assert.Equal(t, "Light pilling on cuffs", item.ConditionDescription)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "97201", item.PostalCode)
	assert.Equal(t, "GTC", item.ListingDuration)
	require.NotNil(t, item.PictureDetails)
	assert.Equal(t, []string{"https://pics.example/1.jpg", "https://pics.example/2.jpg"}, item.PictureDetails.PictureURL)
	require.NotNil(t, item.BestOfferDetails)
	assert.True(t, item.BestOfferDetails.BestOfferEnabled)
	assert.Nil(t, item.BuyItNowPrice)

	require.NotNil(t, item.SellerProfiles)
	require.NotNil(t, item.SellerProfiles.SellerShippingProfile)
	assert.Equal(t, "ship-1", item.SellerProfiles.SellerShippingProfile.ProfileID)
	assert.Equal(t, "ret-1", item.SellerProfiles.SellerReturnProfile.ReturnID)
	assert.Equal(t, "pay-1", item.SellerProfiles.SellerPaymentProfile.PaymentID)

	// Sweaters ship at 2lb 0oz
	require.NotNil(t, item.ShippingPackageDetails)
	assert.Equal(t, 2, item.ShippingPackageDetails.WeightMajor)
	assert.Equal(t, 0, item.ShippingPackageDetails.WeightMinor)
}

func TestPublish_RepeatedSpecificsMergeIntoOneEntry(t *testing.T) {
	submitter := &fakeSubmitter{result: acceptedResult()}
	svc := newTestService(&fakeSuggester{}, &fakePolicies{}, submitter, &fakeUploader{urls: []string{"u"}}, t)

	_, err := svc.Publish(context.Background(), Request{
		Draft: testDraft(),
		Price: decimal.NewFromInt(45),
	})
	require.NoError(t, err)

	require.NotNil(t, submitter.item.ItemSpecifics)
	var accents *ebay.NameValueList
	names := make(map[string]int)
	for i, nv := range submitter.item.ItemSpecifics.NameValueList {
		names[nv.Name]++
		if nv.Name == "Accents" {
			accents = &submitter.item.ItemSpecifics.NameValueList[i]
		}
	}
	for name, count := range names {
		assert.Equal(t, 1, count, "name %q appears more than once", name)
	}
	require.NotNil(t, accents)
	assert.Equal(t, []string{"Toggle buttons", "Shawl collar"}, accents.Values)
}

func TestPublish_TitleTruncated(t *testing.T) {
	submitter := &fakeSubmitter{result: acceptedResult()}
	svc := newTestService(&fakeSuggester{}, &fakePolicies{}, submitter, &fakeUploader{urls: []string{"u"}}, t)

	draft := testDraft()
	draft.Record.Title = strings.Repeat("Vintage Wool Cardigan ", 10)
	_, err := svc.Publish(context.Background(), Request{
		Draft: draft,
		Price: decimal.NewFromInt(45),
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(submitter.item.Title), listing.MaxTitleLength)
}

func TestPublish_AdvisoryFailuresDegrade(t *testing.T) {
	submitter := &fakeSubmitter{result: acceptedResult()}
	svc := newTestService(
		&fakeSuggester{err: errors.New("suggestion unavailable")},
		&fakePolicies{err: errors.New("account unavailable")},
		submitter,
		&fakeUploader{urls: []string{"u"}},
		t,
	)

	result, err := svc.Publish(context.Background(), Request{
		Draft: testDraft(),
		Price: decimal.NewFromInt(45),
	})
	require.NoError(t, err)

	// Local table resolves the cardigan path
	assert.Equal(t, "11484", result.CategoryID)
	assert.Nil(t, submitter.item.SellerProfiles)
	assert.True(t, result.Success)
}

func TestPublish_EmptySuggestionFallsBackToTable(t *testing.T) {
	submitter := &fakeSubmitter{result: acceptedResult()}
	svc := newTestService(&fakeSuggester{id: ""}, &fakePolicies{}, submitter, &fakeUploader{urls: []string{"u"}}, t)

	draft := testDraft()
	draft.Record.Category = "Men > Jeans"
	result, err := svc.Publish(context.Background(), Request{
		Draft: draft,
		Price: decimal.NewFromInt(45),
	})
	require.NoError(t, err)
	assert.Equal(t, "11483", result.CategoryID)
}

func TestPublish_ZeroPhotosProceedsWithWarning(t *testing.T) {
	submitter := &fakeSubmitter{result: acceptedResult()}
	svc := newTestService(&fakeSuggester{}, &fakePolicies{}, submitter, &fakeUploader{urls: nil}, t)

	result, err := svc.Publish(context.Background(), Request{
		Draft: testDraft(),
		Price: decimal.NewFromInt(45),
	})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.ZeroPhotos)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "without photos")
	assert.Equal(t, 1, submitter.calls)
	assert.Nil(t, submitter.item.PictureDetails)
}

func TestPublish_RejectionIsStructuredNotError(t *testing.T) {
	rejection := fmt.Errorf("%w: Title is too long.\nInvalid category.", ebay.ErrListingRejected)
	submitter := &fakeSubmitter{err: rejection}
	svc := newTestService(&fakeSuggester{}, &fakePolicies{}, submitter, &fakeUploader{urls: []string{"u"}}, t)

	result, err := svc.Publish(context.Background(), Request{
		Draft: testDraft(),
		Price: decimal.NewFromInt(45),
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Title is too long.")
	assert.Contains(t, result.Error, "Invalid category.")
	assert.Equal(t, 1, submitter.calls)
}

func TestPublish_TransportFailureSurfacesAsError(t *testing.T) {
	submitter := &fakeSubmitter{err: fmt.Errorf("%w: HTTP 503", ebay.ErrUnavailable)}
	svc := newTestService(&fakeSuggester{}, &fakePolicies{}, submitter, &fakeUploader{urls: []string{"u"}}, t)

	_, err := svc.Publish(context.Background(), Request{
		Draft: testDraft(),
		Price: decimal.NewFromInt(45),
	})
	assert.ErrorIs(t, err, ebay.ErrUnavailable)
}

func TestPublish_AuctionBuyItNow(t *testing.T) {
	submitter := &fakeSubmitter{result: acceptedResult()}
	svc := newTestService(&fakeSuggester{}, &fakePolicies{}, submitter, &fakeUploader{urls: []string{"u"}}, t)

	_, err := svc.Publish(context.Background(), Request{
		Draft:         testDraft(),
		Price:         decimal.NewFromInt(20),
		ListingType:   "Chinese",
		BuyItNowPrice: decimal.NewFromInt(45),
		BestOffer:     true,
	})
	require.NoError(t, err)

	item := submitter.item
	assert.Equal(t, "Chinese", item.ListingType)
	require.NotNil(t, item.BuyItNowPrice)
	assert.Equal(t, "45.00", item.BuyItNowPrice.Value)
	// Best offer only applies to fixed-price listings
	assert.Nil(t, item.BestOfferDetails)
}

func TestPublish_Validation(t *testing.T) {
	svc := newTestService(&fakeSuggester{}, &fakePolicies{}, &fakeSubmitter{result: acceptedResult()}, &fakeUploader{}, t)
	ctx := context.Background()

	_, err := svc.Publish(ctx, Request{Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, listing.ErrMissingRecord)

	draft := testDraft()
	draft.ImagePaths = nil
	_, err = svc.Publish(ctx, Request{Draft: draft, Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, listing.ErrMissingImages)

	_, err = svc.Publish(ctx, Request{Draft: testDraft()})
	assert.ErrorIs(t, err, listing.ErrMissingPrice)

	bad := testDraft()
	bad.Record.ConditionScore = 9
	_, err = svc.Publish(ctx, Request{Draft: bad, Price: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, listing.ErrInvalidConditionScore)
}

func TestPublish_OverridesApplied(t *testing.T) {
	submitter := &fakeSubmitter{result: acceptedResult()}
	svc := newTestService(&fakeSuggester{}, &fakePolicies{}, submitter, &fakeUploader{urls: []string{"u"}}, t)

	_, err := svc.Publish(context.Background(), Request{
		Draft: testDraft(),
		Price: decimal.NewFromInt(45),
		Overrides: &listing.Overrides{
			Title:    "Corrected Title Pendleton Cardigan XXL",
			Category: "Men > Jeans",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Corrected Title Pendleton Cardigan XXL", submitter.item.Title)
	assert.Equal(t, "11483", submitter.item.PrimaryCategory.CategoryID)
}
