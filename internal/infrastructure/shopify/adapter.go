package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/a7delivery/backend/internal/domain/settings"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// ordersPageLimit is the Admin API per-page maximum; a single page is
// fetched per sync and pagination is left to repeated syncs.
const ordersPageLimit = 250

// Adapter implements order.SourcePlatform against the Shopify Admin API.
// Credentials are per-call: each tenant carries its own store URL and
// access token.
type Adapter struct {
	apiVersion   string
	fetchTimeout time.Duration
	probeTimeout time.Duration
	httpClient   *http.Client
}

// Config holds the store-independent adapter settings
type Config struct {
	APIVersion   string
	FetchTimeout time.Duration
	ProbeTimeout time.Duration
}

const (
	defaultFetchTimeout = 30 * time.Second
	defaultProbeTimeout = 10 * time.Second
)

// NewAdapter creates a new Shopify adapter
func NewAdapter(cfg Config) *Adapter {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = defaultProbeTimeout
	}
	return &Adapter{
		apiVersion:   cfg.APIVersion,
		fetchTimeout: cfg.FetchTimeout,
		probeTimeout: cfg.ProbeTimeout,
		httpClient:   &http.Client{},
	}
}

// NormalizeStoreURL turns operator input like "my-shop" or
// "my-shop.myshopify.com" into a full https base URL. A host that already
// carries a scheme or a dot passes through unchanged.
func NormalizeStoreURL(raw string) string {
	u := strings.TrimSpace(raw)
	u = strings.TrimSuffix(u, "/")
	if u == "" {
		return ""
	}
	if !strings.Contains(u, "://") {
		u = "https://" + u
	}
	host := strings.TrimPrefix(strings.TrimPrefix(u, "https://"), "http://")
	if !strings.Contains(host, ".") {
		u += ".myshopify.com"
	}
	return u
}

// FetchOrders retrieves the latest orders for the store behind creds
func (a *Adapter) FetchOrders(ctx context.Context, creds settings.SourceCredentials) ([]order.SourceOrder, error) {
	url := fmt.Sprintf("%s/admin/api/%s/orders.json?status=any&limit=%d",
		NormalizeStoreURL(creds.StoreURL), a.apiVersion, ordersPageLimit)

	body, err := a.doRequest(ctx, url, creds.AccessToken, a.fetchTimeout)
	if err != nil {
		return nil, err
	}

	var envelope ordersResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: orders response: %v", order.ErrMalformedSourceData, err)
	}

	orders := make([]order.SourceOrder, 0, len(envelope.Orders))
	for _, w := range envelope.Orders {
		orders = append(orders, toSourceOrder(w))
	}
	return orders, nil
}

// ProbeShop verifies the credential pair by fetching shop metadata
func (a *Adapter) ProbeShop(ctx context.Context, creds settings.SourceCredentials) (*order.ShopInfo, error) {
	url := fmt.Sprintf("%s/admin/api/%s/shop.json",
		NormalizeStoreURL(creds.StoreURL), a.apiVersion)

	body, err := a.doRequest(ctx, url, creds.AccessToken, a.probeTimeout)
	if err != nil {
		return nil, err
	}

	var envelope shopResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: shop response: %v", order.ErrMalformedSourceData, err)
	}

	return &order.ShopInfo{
		Name:   envelope.Shop.Name,
		Domain: envelope.Shop.Domain,
		Email:  envelope.Shop.Email,
	}, nil
}

// doRequest performs an authenticated GET against the Admin API
func (a *Adapter) doRequest(ctx context.Context, url, accessToken string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", order.ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	// The client follows ordinary redirects, so any 3xx surfacing here has
	// no usable body; anything outside 2xx rejects the call, matching the
	// delivery adapter.
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d from source platform", order.ErrUpstreamRejected, resp.StatusCode)
	}

	return body, nil
}

// toSourceOrder flattens a wire order into the platform-agnostic shape.
// Order-level phone and email back-fill an absent customer block.
func toSourceOrder(w wireOrder) order.SourceOrder {
	src := order.SourceOrder{
		ID:                strconv.FormatInt(w.ID, 10),
		OrderNumber:       w.Name,
		TotalPrice:        w.TotalPrice,
		FinancialStatus:   w.FinancialStatus,
		FulfillmentStatus: w.FulfillmentStatus,
		Note:              w.Note,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
	if w.ID == 0 {
		src.ID = ""
	}

	if w.Customer != nil {
		src.Customer = order.SourceCustomer{
			FirstName: w.Customer.FirstName,
			LastName:  w.Customer.LastName,
			Phone:     w.Customer.Phone,
			Email:     w.Customer.Email,
		}
	}
	if src.Customer.Phone == "" {
		src.Customer.Phone = w.Phone
	}
	if src.Customer.Email == "" {
		src.Customer.Email = w.Email
	}

	if w.ShippingAddress != nil {
		src.ShippingAddress = order.SourceAddress{
			Address1: w.ShippingAddress.Address1,
			Address2: w.ShippingAddress.Address2,
			City:     w.ShippingAddress.City,
			Phone:    w.ShippingAddress.Phone,
		}
	}
	if w.BillingAddress != nil {
		src.BillingAddress = order.SourceAddress{
			Address1: w.BillingAddress.Address1,
			Address2: w.BillingAddress.Address2,
			City:     w.BillingAddress.City,
			Phone:    w.BillingAddress.Phone,
		}
	}

	for _, li := range w.LineItems {
		src.LineItems = append(src.LineItems, order.SourceLineItem{
			Title:    li.Title,
			Quantity: li.Quantity,
			Price:    li.Price,
		})
	}

	return src
}

var _ order.SourcePlatform = (*Adapter)(nil)
