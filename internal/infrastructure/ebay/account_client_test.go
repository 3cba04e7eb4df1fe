package ebay

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPolicies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer oauth-token", r.Header.Get("Authorization"))
		assert.Equal(t, "EBAY_US", r.URL.Query().Get("marketplace_id"))

		switch r.URL.Path {
		case "/sell/account/v1/fulfillment_policy":
			io.WriteString(w, `{"fulfillmentPolicies":[{"fulfillmentPolicyId":"ful-1","name":"Standard Shipping"}]}`)
		case "/sell/account/v1/return_policy":
			io.WriteString(w, `{"returnPolicies":[{"returnPolicyId":"ret-1","name":"30 Day Returns"}]}`)
		case "/sell/account/v1/payment_policy":
			io.WriteString(w, `{"paymentPolicies":[{"paymentPolicyId":"pay-1","name":"Managed Payments"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewConfig("a", "d", "c", "t")
	c.OAuthToken = "oauth-token"
	c.AccountAPIURL = srv.URL
	client, err := NewAccountClient(c)
	require.NoError(t, err)

	policies, err := client.FetchPolicies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ful-1", policies.FulfillmentPolicyID)
	assert.Equal(t, "Standard Shipping", policies.FulfillmentPolicyName)
	assert.Equal(t, "ret-1", policies.ReturnPolicyID)
	assert.Equal(t, "pay-1", policies.PaymentPolicyID)
}

func TestFetchPolicies_RequiresOAuthToken(t *testing.T) {
	client, err := NewAccountClient(NewConfig("a", "d", "c", "t"))
	require.NoError(t, err)

	_, err = client.FetchPolicies(context.Background())
	assert.ErrorIs(t, err, ErrMissingOAuthToken)
}

func TestFetchPolicies_EmptyAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := NewConfig("a", "d", "c", "t")
	c.OAuthToken = "oauth-token"
	c.AccountAPIURL = srv.URL
	client, err := NewAccountClient(c)
	require.NoError(t, err)

	_, err = client.FetchPolicies(context.Background())
	assert.ErrorIs(t, err, ErrNoPolicies)
}
