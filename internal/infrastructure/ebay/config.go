package ebay

import "errors"

// Config holds the marketplace API credentials and endpoints. The Trading
// API takes the legacy key triplet plus an Auth'n'Auth token; the REST
// surfaces (Account, Browse) take the OAuth user token.
type Config struct {
	// AppID is the application key (X-EBAY-API-APP-NAME)
	AppID string
	// DevID is the developer key (X-EBAY-API-DEV-NAME)
	DevID string
	// CertID is the certificate key (X-EBAY-API-CERT-NAME)
	CertID string
	// AuthToken is the Auth'n'Auth token embedded in RequesterCredentials
	AuthToken string
	// OAuthToken is the user OAuth token for REST calls and the IAF header
	OAuthToken string
	// SiteID selects the marketplace site, "0" for US
	SiteID string
	// CompatibilityLevel is the Trading API schema version
	CompatibilityLevel string
	// TradingAPIURL is the Trading API gateway
	TradingAPIURL string
	// AccountAPIURL is the base URL of the sell/account REST API
	AccountAPIURL string
	// BrowseAPIURL is the base URL of the buy/browse REST API
	BrowseAPIURL string
	// MarketplaceID scopes REST calls, e.g. EBAY_US
	MarketplaceID string
	// IsSandbox selects the sandbox gateways when no URL is set
	IsSandbox bool
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// ProductionTradingURL is the production Trading API gateway
	ProductionTradingURL = "https://api.ebay.com/ws/api.dll"
	// SandboxTradingURL is the sandbox Trading API gateway
	SandboxTradingURL = "https://api.sandbox.ebay.com/ws/api.dll"
	// ProductionAPIURL is the production REST API root
	ProductionAPIURL = "https://api.ebay.com"
	// SandboxAPIURL is the sandbox REST API root
	SandboxAPIURL = "https://api.sandbox.ebay.com"

	// DefaultCompatibilityLevel is the Trading API schema version requests
	// are pinned to.
	DefaultCompatibilityLevel = "967"
	// DefaultSiteID is the US marketplace site.
	DefaultSiteID = "0"
	// DefaultMarketplaceID scopes REST calls to the US marketplace.
	DefaultMarketplaceID = "EBAY_US"
)

// Errors for marketplace configuration
var (
	ErrConfigMissingAppID     = errors.New("ebay: app id is required")
	ErrConfigMissingDevID     = errors.New("ebay: dev id is required")
	ErrConfigMissingCertID    = errors.New("ebay: cert id is required")
	ErrConfigMissingAuthToken = errors.New("ebay: auth token is required")
)

// NewConfig creates a production configuration with defaults.
func NewConfig(appID, devID, certID, authToken string) *Config {
	return &Config{
		AppID:              appID,
		DevID:              devID,
		CertID:             certID,
		AuthToken:          authToken,
		SiteID:             DefaultSiteID,
		CompatibilityLevel: DefaultCompatibilityLevel,
		TradingAPIURL:      ProductionTradingURL,
		AccountAPIURL:      ProductionAPIURL,
		BrowseAPIURL:       ProductionAPIURL,
		MarketplaceID:      DefaultMarketplaceID,
		IsSandbox:          false,
		TimeoutSeconds:     60,
	}
}

// NewSandboxConfig creates a sandbox configuration with defaults.
func NewSandboxConfig(appID, devID, certID, authToken string) *Config {
	c := NewConfig(appID, devID, certID, authToken)
	c.TradingAPIURL = SandboxTradingURL
	c.AccountAPIURL = SandboxAPIURL
	c.BrowseAPIURL = SandboxAPIURL
	c.IsSandbox = true
	return c
}

// Validate validates the configuration and fills unset defaults.
func (c *Config) Validate() error {
	if c.AppID == "" {
		return ErrConfigMissingAppID
	}
	if c.DevID == "" {
		return ErrConfigMissingDevID
	}
	if c.CertID == "" {
		return ErrConfigMissingCertID
	}
	if c.AuthToken == "" {
		return ErrConfigMissingAuthToken
	}
	if c.SiteID == "" {
		c.SiteID = DefaultSiteID
	}
	if c.CompatibilityLevel == "" {
		c.CompatibilityLevel = DefaultCompatibilityLevel
	}
	if c.MarketplaceID == "" {
		c.MarketplaceID = DefaultMarketplaceID
	}
	if c.TradingAPIURL == "" {
		if c.IsSandbox {
			c.TradingAPIURL = SandboxTradingURL
		} else {
			c.TradingAPIURL = ProductionTradingURL
		}
	}
	if c.AccountAPIURL == "" {
		if c.IsSandbox {
			c.AccountAPIURL = SandboxAPIURL
		} else {
			c.AccountAPIURL = ProductionAPIURL
		}
	}
	if c.BrowseAPIURL == "" {
		c.BrowseAPIURL = c.AccountAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 60
	}
	return nil
}
