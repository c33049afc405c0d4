package gateway

import (
	"fmt"
	"os"
	"strings"
)

// Config carries the SCAPI tenant coordinates and SLAS client
// credentials. All fields are required.
type Config struct {
	Host         string
	OrgID        string
	ClientID     string
	ClientSecret string
	ChannelID    string
	SiteID       string
}

// ConfigFromEnv loads the gateway configuration from SCAPI_* environment
// variables and errors if any are missing.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		Host:         os.Getenv("SCAPI_HOST"),
		OrgID:        os.Getenv("SCAPI_ORG_ID"),
		ClientID:     os.Getenv("SCAPI_CLIENT_ID"),
		ClientSecret: os.Getenv("SCAPI_CLIENT_SECRET"),
		ChannelID:    os.Getenv("SCAPI_CHANNEL_ID"),
		SiteID:       os.Getenv("SCAPI_SITE_ID"),
	}

	var missing []string
	for name, value := range map[string]string{
		"SCAPI_HOST":          cfg.Host,
		"SCAPI_ORG_ID":        cfg.OrgID,
		"SCAPI_CLIENT_ID":     cfg.ClientID,
		"SCAPI_CLIENT_SECRET": cfg.ClientSecret,
		"SCAPI_CHANNEL_ID":    cfg.ChannelID,
		"SCAPI_SITE_ID":       cfg.SiteID,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func (c *Config) authURL() string {
	return fmt.Sprintf("%s/shopper/auth/v1/organizations/%s/oauth2/token", c.Host, c.OrgID)
}

func (c *Config) basketsURL() string {
	return fmt.Sprintf("%s/checkout/shopper-baskets/v1/organizations/%s/baskets", c.Host, c.OrgID)
}

func (c *Config) basketURL(basketID string) string {
	return fmt.Sprintf("%s/%s", c.basketsURL(), basketID)
}

func (c *Config) basketItemsURL(basketID string) string {
	return c.basketURL(basketID) + "/items"
}

func (c *Config) basketBillingURL(basketID string) string {
	return c.basketURL(basketID) + "/billing-address"
}

func (c *Config) basketShipmentURL(basketID string) string {
	return c.basketURL(basketID) + "/shipments/me"
}

func (c *Config) basketCouponsURL(basketID string) string {
	return c.basketURL(basketID) + "/coupons"
}

func (c *Config) basketCustomerURL(basketID string) string {
	return c.basketURL(basketID) + "/customer"
}

func (c *Config) basketPaymentURL(basketID string) string {
	return c.basketURL(basketID) + "/payment-instruments"
}

func (c *Config) ordersURL() string {
	return fmt.Sprintf("%s/checkout/shopper-orders/v1/organizations/%s/orders", c.Host, c.OrgID)
}
