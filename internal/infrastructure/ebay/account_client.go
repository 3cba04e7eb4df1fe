package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Errors for the account REST API
var (
	// ErrMissingOAuthToken indicates a REST call without a user token
	ErrMissingOAuthToken = errors.New("ebay: oauth token is required")
	// ErrNoPolicies indicates the seller account has no business policies
	ErrNoPolicies = errors.New("ebay: seller account has no business policies")
)

// SellerPolicies holds the account-level business policy ids referenced by a
// listing through SellerProfiles.
type SellerPolicies struct {
	FulfillmentPolicyID   string `json:"fulfillment_policy_id"`
	FulfillmentPolicyName string `json:"fulfillment_policy_name"`
	ReturnPolicyID        string `json:"return_policy_id"`
	ReturnPolicyName      string `json:"return_policy_name"`
	PaymentPolicyID       string `json:"payment_policy_id"`
	PaymentPolicyName     string `json:"payment_policy_name"`
}

// AccountClient fetches seller business policies from the account REST API.
type AccountClient struct {
	config     *Config
	httpClient *http.Client
}

// NewAccountClient creates an account API client with the given configuration.
func NewAccountClient(config *Config) (*AccountClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &AccountClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

type policyEntry struct {
	FulfillmentPolicyID string `json:"fulfillmentPolicyId"`
	ReturnPolicyID      string `json:"returnPolicyId"`
	PaymentPolicyID     string `json:"paymentPolicyId"`
	Name                string `json:"name"`
}

type policyListResponse struct {
	FulfillmentPolicies []policyEntry `json:"fulfillmentPolicies"`
	ReturnPolicies      []policyEntry `json:"returnPolicies"`
	PaymentPolicies     []policyEntry `json:"paymentPolicies"`
}

// FetchPolicies retrieves the seller's fulfillment, return and payment
// policies for the configured marketplace and returns the first entry of
// each list. Sellers using opt-in business policies keep exactly one default
// per type, so the first entry is the effective one.
func (c *AccountClient) FetchPolicies(ctx context.Context) (*SellerPolicies, error) {
	if c.config.OAuthToken == "" {
		return nil, ErrMissingOAuthToken
	}

	policies := &SellerPolicies{}

	fulfillment, err := c.fetchPolicyList(ctx, "fulfillment_policy")
	if err != nil {
		return nil, err
	}
	if len(fulfillment.FulfillmentPolicies) > 0 {
		policies.FulfillmentPolicyID = fulfillment.FulfillmentPolicies[0].FulfillmentPolicyID
		policies.FulfillmentPolicyName = fulfillment.FulfillmentPolicies[0].Name
	}

	ret, err := c.fetchPolicyList(ctx, "return_policy")
	if err != nil {
		return nil, err
	}
	if len(ret.ReturnPolicies) > 0 {
		policies.ReturnPolicyID = ret.ReturnPolicies[0].ReturnPolicyID
		policies.ReturnPolicyName = ret.ReturnPolicies[0].Name
	}

	payment, err := c.fetchPolicyList(ctx, "payment_policy")
	if err != nil {
		return nil, err
	}
	if len(payment.PaymentPolicies) > 0 {
		policies.PaymentPolicyID = payment.PaymentPolicies[0].PaymentPolicyID
		policies.PaymentPolicyName = payment.PaymentPolicies[0].Name
	}

	if policies.FulfillmentPolicyID == "" && policies.ReturnPolicyID == "" && policies.PaymentPolicyID == "" {
		return nil, ErrNoPolicies
	}
	return policies, nil
}

// fetchPolicyList performs one GET against sell/account for a policy type.
func (c *AccountClient) fetchPolicyList(ctx context.Context, policyType string) (*policyListResponse, error) {
	endpoint := fmt.Sprintf("%s/sell/account/v1/%s?marketplace_id=%s",
		c.config.AccountAPIURL, policyType, url.QueryEscape(c.config.MarketplaceID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ebay: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.OAuthToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("ebay: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s HTTP %d", ErrInvalidResponse, policyType, resp.StatusCode)
	}

	var list policyListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &list, nil
}
