package order

import (
	"context"

	"github.com/a7delivery/backend/internal/domain/settings"
)

// SourcePlatform is the port to the upstream e-commerce platform.
// Credentials are passed per call: every invocation acts on behalf of one
// tenant and tenants never share credentials.
type SourcePlatform interface {
	// FetchOrders pulls the current order list for the store behind the
	// credentials. A single page; pagination is out of scope.
	FetchOrders(ctx context.Context, creds settings.SourceCredentials) ([]SourceOrder, error)

	// ProbeShop verifies the credentials by fetching shop metadata
	ProbeShop(ctx context.Context, creds settings.SourceCredentials) (*ShopInfo, error)
}

// DeliveryResult is the delivery API's answer to a batch submission
type DeliveryResult struct {
	// Submitted is the number of shipments in the accepted batch
	Submitted int
	// RawBody is the upstream response body, passed through for diagnosis
	RawBody string
}

// DeliveryGateway is the port to the last-mile delivery dispatch API.
// A batch is accepted or rejected as a whole at HTTP-status granularity;
// per-shipment results are not itemized.
type DeliveryGateway interface {
	// SendShipments submits the entire batch in a single request
	SendShipments(ctx context.Context, creds settings.DeliveryCredentials, shipments []Shipment) (*DeliveryResult, error)

	// Probe checks that the credentials are accepted by the delivery API
	Probe(ctx context.Context, creds settings.DeliveryCredentials) error
}
