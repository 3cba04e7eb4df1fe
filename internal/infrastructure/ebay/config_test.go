package ebay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"missing app id", func(c *Config) { c.AppID = "" }, ErrConfigMissingAppID},
		{"missing dev id", func(c *Config) { c.DevID = "" }, ErrConfigMissingDevID},
		{"missing cert id", func(c *Config) { c.CertID = "" }, ErrConfigMissingCertID},
		{"missing auth token", func(c *Config) { c.AuthToken = "" }, ErrConfigMissingAuthToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfig("app", "dev", "cert", "token")
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateFillsDefaults(t *testing.T) {
	c := &Config{AppID: "a", DevID: "d", CertID: "c", AuthToken: "t"}
	require.NoError(t, c.Validate())

	assert.Equal(t, DefaultSiteID, c.SiteID)
	assert.Equal(t, DefaultCompatibilityLevel, c.CompatibilityLevel)
	assert.Equal(t, DefaultMarketplaceID, c.MarketplaceID)
	assert.Equal(t, ProductionTradingURL, c.TradingAPIURL)
	assert.Equal(t, ProductionAPIURL, c.AccountAPIURL)
	assert.Equal(t, ProductionAPIURL, c.BrowseAPIURL)
	assert.Equal(t, 60, c.TimeoutSeconds)
}

func TestConfig_SandboxDefaults(t *testing.T) {
	c := NewSandboxConfig("a", "d", "c", "t")
	require.NoError(t, c.Validate())

	assert.True(t, c.IsSandbox)
	assert.Equal(t, SandboxTradingURL, c.TradingAPIURL)
	assert.Equal(t, SandboxAPIURL, c.AccountAPIURL)
}
