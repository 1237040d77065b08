package zrexpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/a7delivery/backend/internal/domain/settings"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 1 * 1024 * 1024 // 1MB

const (
	addColisPath = "/api_v1/add_colis"
	tokenPath    = "/api_v1/token"
)

// Adapter implements order.DeliveryGateway against the ZR Express API.
// A batch lives or dies as one HTTP request; the API does not itemize
// per-parcel failures.
type Adapter struct {
	baseURL         string
	dispatchTimeout time.Duration
	probeTimeout    time.Duration
	httpClient      *http.Client
}

// Config holds the tenant-independent adapter settings
type Config struct {
	BaseURL         string
	DispatchTimeout time.Duration
	ProbeTimeout    time.Duration
}

const (
	defaultDispatchTimeout = 30 * time.Second
	defaultProbeTimeout    = 10 * time.Second
)

// NewAdapter creates a new ZR Express adapter
func NewAdapter(cfg Config) *Adapter {
	if cfg.DispatchTimeout <= 0 {
		cfg.DispatchTimeout = defaultDispatchTimeout
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = defaultProbeTimeout
	}
	return &Adapter{
		baseURL:         cfg.BaseURL,
		dispatchTimeout: cfg.DispatchTimeout,
		probeTimeout:    cfg.ProbeTimeout,
		httpClient:      &http.Client{},
	}
}

// SendShipments submits the entire batch in a single request. Any non-2xx
// response rejects the whole batch.
func (a *Adapter) SendShipments(ctx context.Context, creds settings.DeliveryCredentials, shipments []order.Shipment) (*order.DeliveryResult, error) {
	parcels := make([]colis, len(shipments))
	for i, s := range shipments {
		parcels[i] = toColis(s)
	}

	payload, err := json.Marshal(addColisRequest{Colis: parcels})
	if err != nil {
		return nil, fmt.Errorf("zrexpress: failed to marshal batch: %w", err)
	}

	body, err := a.doRequest(ctx, http.MethodPost, addColisPath, creds, payload, a.dispatchTimeout)
	if err != nil {
		return nil, err
	}

	return &order.DeliveryResult{
		Submitted: len(shipments),
		RawBody:   string(body),
	}, nil
}

// Probe checks that the credential pair is accepted by the delivery API
func (a *Adapter) Probe(ctx context.Context, creds settings.DeliveryCredentials) error {
	_, err := a.doRequest(ctx, http.MethodGet, tokenPath, creds, nil, a.probeTimeout)
	return err
}

func (a *Adapter) doRequest(ctx context.Context, method, path string, creds settings.DeliveryCredentials, payload []byte, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("zrexpress: failed to create request: %w", err)
	}
	req.Header.Set("token", creds.Token)
	req.Header.Set("key", creds.Key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", order.ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("zrexpress: failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d from delivery API", order.ErrUpstreamRejected, resp.StatusCode)
	}

	return body, nil
}

var _ order.DeliveryGateway = (*Adapter)(nil)
