package ebay

import "encoding/xml"

// tradingNamespace is the XML namespace shared by every Trading API call.
const tradingNamespace = "urn:ebay:apis:eBLBaseComponents"

// RequesterCredentials carries the Auth'n'Auth token inside each request.
type RequesterCredentials struct {
	EBayAuthToken string `xml:"eBayAuthToken"`
}

// CDATA wraps text that must not be entity-escaped, such as the HTML
// description body.
type CDATA struct {
	Text string `xml:",cdata"`
}

// Amount is a money value with its currency attribute.
type Amount struct {
	CurrencyID string `xml:"currencyID,attr"`
	Value      string `xml:",chardata"`
}

// NameValueList is one item-specific pair. Multi-valued specifics repeat the
// Value element under a single Name.
type NameValueList struct {
	Name   string   `xml:"Name"`
	Values []string `xml:"Value"`
}

// ItemSpecifics wraps the item-specific pairs.
type ItemSpecifics struct {
	NameValueList []NameValueList `xml:"NameValueList"`
}

// PrimaryCategory selects the listing category.
type PrimaryCategory struct {
	CategoryID string `xml:"CategoryID"`
}

// PictureDetails lists the site-hosted photo URLs in display order.
type PictureDetails struct {
	PictureURL []string `xml:"PictureURL"`
}

// SellerProfiles references the account-level business policies.
type SellerProfiles struct {
	SellerShippingProfile *ProfileRef `xml:"SellerShippingProfile,omitempty"`
	SellerReturnProfile   *ProfileRef `xml:"SellerReturnProfile,omitempty"`
	SellerPaymentProfile  *ProfileRef `xml:"SellerPaymentProfile,omitempty"`
}

// ProfileRef points at one business policy by id.
type ProfileRef struct {
	ProfileID string `xml:"ShippingProfileID,omitempty"`
	ReturnID  string `xml:"ReturnProfileID,omitempty"`
	PaymentID string `xml:"PaymentProfileID,omitempty"`
}

// BestOfferDetails toggles offer negotiation on fixed-price listings.
type BestOfferDetails struct {
	BestOfferEnabled bool `xml:"BestOfferEnabled"`
}

// ShippingPackageDetails carries the package weight.
type ShippingPackageDetails struct {
	WeightMajor int `xml:"WeightMajor"`
	WeightMinor int `xml:"WeightMinor"`
}

// Item is the listing body shared by AddItem and AddFixedPriceItem.
type Item struct {
	Title                  string                  `xml:"Title"`
	Description            CDATA                   `xml:"Description"`
	PrimaryCategory        PrimaryCategory         `xml:"PrimaryCategory"`
	CategoryMappingAllowed bool                    `xml:"CategoryMappingAllowed"`
	StartPrice             Amount                  `xml:"StartPrice"`
	BuyItNowPrice          *Amount                 `xml:"BuyItNowPrice,omitempty"`
	ConditionID            string                  `xml:"ConditionID"`
	ConditionDescription   string                  `xml:"ConditionDescription,omitempty"`
	Country                string                  `xml:"Country"`
	Currency               string                  `xml:"Currency"`
	DispatchTimeMax        int                     `xml:"DispatchTimeMax"`
	ListingDuration        string                  `xml:"ListingDuration"`
	ListingType            string                  `xml:"ListingType"`
	PostalCode             string                  `xml:"PostalCode"`
	Quantity               int                     `xml:"Quantity"`
	SKU                    string                  `xml:"SKU,omitempty"`
	BestOfferDetails       *BestOfferDetails       `xml:"BestOfferDetails,omitempty"`
	PictureDetails         *PictureDetails         `xml:"PictureDetails,omitempty"`
	ItemSpecifics          *ItemSpecifics          `xml:"ItemSpecifics,omitempty"`
	SellerProfiles         *SellerProfiles         `xml:"SellerProfiles,omitempty"`
	ShippingPackageDetails *ShippingPackageDetails `xml:"ShippingPackageDetails,omitempty"`
}

// AddItemRequest is the auction-style listing envelope.
type AddItemRequest struct {
	XMLName              xml.Name             `xml:"AddItemRequest"`
	Xmlns                string               `xml:"xmlns,attr"`
	RequesterCredentials RequesterCredentials `xml:"RequesterCredentials"`
	ErrorLanguage        string               `xml:"ErrorLanguage"`
	WarningLevel         string               `xml:"WarningLevel"`
	Item                 Item                 `xml:"Item"`
}

// AddFixedPriceItemRequest is the fixed-price listing envelope.
type AddFixedPriceItemRequest struct {
	XMLName              xml.Name             `xml:"AddFixedPriceItemRequest"`
	Xmlns                string               `xml:"xmlns,attr"`
	RequesterCredentials RequesterCredentials `xml:"RequesterCredentials"`
	ErrorLanguage        string               `xml:"ErrorLanguage"`
	WarningLevel         string               `xml:"WarningLevel"`
	Item                 Item                 `xml:"Item"`
}

// TradingError is one error or warning entry in a Trading API response.
type TradingError struct {
	ShortMessage string `xml:"ShortMessage"`
	LongMessage  string `xml:"LongMessage"`
	ErrorCode    string `xml:"ErrorCode"`
	SeverityCode string `xml:"SeverityCode"`
}

// ListingResponse covers AddItem and AddFixedPriceItem responses; the two
// calls share a payload shape. The XML root name is intentionally left
// unpinned so one type decodes both.
type ListingResponse struct {
	Ack       string         `xml:"Ack"`
	Timestamp string         `xml:"Timestamp"`
	ItemID    string         `xml:"ItemID"`
	StartTime string         `xml:"StartTime"`
	EndTime   string         `xml:"EndTime"`
	Errors    []TradingError `xml:"Errors"`
}

// GetSuggestedCategoriesRequest asks the marketplace to suggest categories
// for a free-text query.
type GetSuggestedCategoriesRequest struct {
	XMLName              xml.Name             `xml:"GetSuggestedCategoriesRequest"`
	Xmlns                string               `xml:"xmlns,attr"`
	RequesterCredentials RequesterCredentials `xml:"RequesterCredentials"`
	Query                string               `xml:"Query"`
}

// SuggestedCategory is one category suggestion with its confidence.
type SuggestedCategory struct {
	Category struct {
		CategoryID   string `xml:"CategoryID"`
		CategoryName string `xml:"CategoryName"`
	} `xml:"Category"`
	PercentItemFound int `xml:"PercentItemFound"`
}

// GetSuggestedCategoriesResponse is the suggestion response payload.
type GetSuggestedCategoriesResponse struct {
	Ack                    string         `xml:"Ack"`
	CategoryCount          int            `xml:"CategoryCount"`
	Errors                 []TradingError `xml:"Errors"`
	SuggestedCategoryArray struct {
		SuggestedCategory []SuggestedCategory `xml:"SuggestedCategory"`
	} `xml:"SuggestedCategoryArray"`
}

// UploadSiteHostedPicturesRequest is the XML part of the multipart picture
// upload; the image bytes travel in a second part.
type UploadSiteHostedPicturesRequest struct {
	XMLName              xml.Name             `xml:"UploadSiteHostedPicturesRequest"`
	Xmlns                string               `xml:"xmlns,attr"`
	RequesterCredentials RequesterCredentials `xml:"RequesterCredentials"`
	PictureName          string               `xml:"PictureName"`
	PictureSet           string               `xml:"PictureSet,omitempty"`
}

// UploadSiteHostedPicturesResponse carries the hosted URL of the uploaded
// picture.
type UploadSiteHostedPicturesResponse struct {
	Ack                      string         `xml:"Ack"`
	Errors                   []TradingError `xml:"Errors"`
	SiteHostedPictureDetails struct {
		FullURL     string `xml:"FullURL"`
		PictureName string `xml:"PictureName"`
		UseByDate   string `xml:"UseByDate"`
	} `xml:"SiteHostedPictureDetails"`
}
