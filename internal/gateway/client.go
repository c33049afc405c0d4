package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const (
	requestTimeout = 30 * time.Second
	// Refresh the access token this long before its actual expiry.
	tokenExpirySkew = 60 * time.Second
)

// Client is the SCAPI-backed Gateway implementation. A circuit breaker
// guards every request so a struggling platform fails fast instead of
// holding request latency at the timeout ceiling.
type Client struct {
	cfg     *Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]

	// mu guards only the cached token fields; the refresh round-trip
	// runs outside it, deduplicated by tokenGroup so concurrent callers
	// wait on one request instead of serializing behind the lock.
	mu             sync.Mutex
	accessToken    string
	tokenExpiresAt time.Time
	tokenGroup     singleflight.Group
}

func NewClient(cfg *Config) *Client {
	settings := gobreaker.Settings{
		Name:    "scapi",
		Timeout: 30 * time.Second,
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

func (c *Client) Enabled() bool { return true }

func (c *Client) basicAuthHeader() string {
	credentials := c.cfg.ClientID + ":" + c.cfg.ClientSecret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

// cachedToken returns the cached access token if it is still comfortably
// inside its lifetime.
func (c *Client) cachedToken() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenExpiresAt.Add(-tokenExpirySkew)) {
		return c.accessToken, true
	}
	return "", false
}

// token returns a valid guest access token, requesting a new one via the
// client-credentials grant when the cached token is missing or near expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	if token, ok := c.cachedToken(); ok {
		return token, nil
	}

	v, err, _ := c.tokenGroup.Do("token", func() (interface{}, error) {
		// A caller that queued behind the winning refresh finds the
		// fresh token here.
		if token, ok := c.cachedToken(); ok {
			return token, nil
		}
		return c.fetchToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) fetchToken(ctx context.Context) (string, error) {
	log.Printf("Requesting new SCAPI guest access token")

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("channel_id", c.cfg.ChannelID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.authURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Authorization", c.basicAuthHeader())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token request returned %d: %s", resp.StatusCode, body)
	}

	var tokenData struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenData); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	expiresIn := tokenData.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 1800
	}

	c.mu.Lock()
	c.accessToken = tokenData.AccessToken
	c.tokenExpiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	c.mu.Unlock()

	return tokenData.AccessToken, nil
}

// do executes an authenticated JSON request through the breaker and
// returns the raw response body.
func (c *Client) do(ctx context.Context, method, rawURL string, body any) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		token, err := c.token(ctx)
		if err != nil {
			return nil, err
		}

		var reader io.Reader
		if body != nil {
			payload, errMarshal := json.Marshal(body)
			if errMarshal != nil {
				return nil, fmt.Errorf("failed to marshal request body: %w", errMarshal)
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("%s %s returned %d: %s", method, rawURL, resp.StatusCode, data)
		}
		return data, nil
	})
}

func (c *Client) doWithSite(ctx context.Context, method, rawURL string, body any) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("bad gateway url %q: %w", rawURL, err)
	}
	q := u.Query()
	q.Set("siteId", c.cfg.SiteID)
	u.RawQuery = q.Encode()
	return c.do(ctx, method, u.String(), body)
}

func (c *Client) CreateBasket(ctx context.Context) (string, error) {
	data, err := c.doWithSite(ctx, http.MethodPost, c.cfg.basketsURL(), struct{}{})
	if err != nil {
		return "", fmt.Errorf("failed to create basket: %w", err)
	}

	var basket Basket
	if err := json.Unmarshal(data, &basket); err != nil {
		return "", fmt.Errorf("failed to decode basket: %w", err)
	}
	log.Printf("SCAPI basket created: %s", basket.BasketID)
	return basket.BasketID, nil
}

func (c *Client) AddItem(ctx context.Context, basketID, productID string, quantity int) error {
	items := []basketItemRequest{{ProductID: productID, Quantity: quantity}}
	if _, err := c.doWithSite(ctx, http.MethodPost, c.cfg.basketItemsURL(basketID), items); err != nil {
		return fmt.Errorf("failed to add item %s to basket %s: %w", productID, basketID, err)
	}
	log.Printf("Added item %s to basket %s", productID, basketID)
	return nil
}

func (c *Client) AddBillingAddress(ctx context.Context, basketID string, addr Address) error {
	if _, err := c.doWithSite(ctx, http.MethodPut, c.cfg.basketBillingURL(basketID), addr); err != nil {
		return fmt.Errorf("failed to add billing address to basket %s: %w", basketID, err)
	}
	return nil
}

func (c *Client) UpdateShipment(ctx context.Context, basketID string, addr Address, shippingMethodID string) error {
	update := shipmentUpdateRequest{
		ShippingAddress: addr,
		ShippingMethod:  shippingMethod{ID: shippingMethodID},
	}
	if _, err := c.doWithSite(ctx, http.MethodPatch, c.cfg.basketShipmentURL(basketID), update); err != nil {
		return fmt.Errorf("failed to update shipment for basket %s: %w", basketID, err)
	}
	return nil
}

// AddCoupon applies a coupon and returns the full updated basket, which
// carries the recomputed totals and price adjustments.
func (c *Client) AddCoupon(ctx context.Context, basketID, couponCode string) (*Basket, error) {
	data, err := c.doWithSite(ctx, http.MethodPost, c.cfg.basketCouponsURL(basketID), couponRequest{Code: couponCode})
	if err != nil {
		return nil, fmt.Errorf("failed to apply coupon %s: %w", couponCode, err)
	}

	var basket Basket
	if err := json.Unmarshal(data, &basket); err != nil {
		return nil, fmt.Errorf("failed to decode basket: %w", err)
	}
	log.Printf("Applied coupon %s to basket %s, new total: %.2f", couponCode, basketID, basket.OrderTotal)
	return &basket, nil
}

func (c *Client) AddCustomer(ctx context.Context, basketID, email string) error {
	if _, err := c.doWithSite(ctx, http.MethodPut, c.cfg.basketCustomerURL(basketID), customerRequest{Email: email}); err != nil {
		return fmt.Errorf("failed to add customer to basket %s: %w", basketID, err)
	}
	return nil
}

func (c *Client) AddPaymentInstrument(ctx context.Context, basketID string) error {
	payment := paymentInstrumentRequest{
		PaymentMethodID: "CREDIT_CARD",
		PaymentCard:     paymentCard{CardType: "Visa"},
	}
	if _, err := c.doWithSite(ctx, http.MethodPost, c.cfg.basketPaymentURL(basketID), payment); err != nil {
		return fmt.Errorf("failed to add payment instrument to basket %s: %w", basketID, err)
	}
	return nil
}

func (c *Client) GetBasket(ctx context.Context, basketID string) (*Basket, error) {
	data, err := c.doWithSite(ctx, http.MethodGet, c.cfg.basketURL(basketID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get basket %s: %w", basketID, err)
	}

	var basket Basket
	if err := json.Unmarshal(data, &basket); err != nil {
		return nil, fmt.Errorf("failed to decode basket: %w", err)
	}
	return &basket, nil
}

func (c *Client) CreateOrder(ctx context.Context, basketID string) (string, error) {
	data, err := c.doWithSite(ctx, http.MethodPost, c.cfg.ordersURL(), orderRequest{BasketID: basketID})
	if err != nil {
		return "", fmt.Errorf("failed to create order from basket %s: %w", basketID, err)
	}

	var order struct {
		OrderNo string `json:"orderNo"`
	}
	if err := json.Unmarshal(data, &order); err != nil {
		return "", fmt.Errorf("failed to decode order: %w", err)
	}
	log.Printf("SCAPI order created: %s", order.OrderNo)
	return order.OrderNo, nil
}
