package order

// SourceOrder is the platform-agnostic representation of an order fetched
// from the upstream e-commerce platform. Every field is optional on the
// wire; the zero value stands in for anything the platform omitted.
// Timestamps stay raw strings here and are parsed during normalization so
// that malformed data is caught at the ingestion boundary.
type SourceOrder struct {
	ID                string
	OrderNumber       string
	Customer          SourceCustomer
	ShippingAddress   SourceAddress
	BillingAddress    SourceAddress
	LineItems         []SourceLineItem
	TotalPrice        string
	FinancialStatus   string
	FulfillmentStatus string
	Note              string
	CreatedAt         string
	UpdatedAt         string
}

// SourceCustomer holds the customer block of a source order
type SourceCustomer struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// SourceAddress holds an address block of a source order
type SourceAddress struct {
	Address1 string
	Address2 string
	City     string
	Phone    string
}

// SourceLineItem holds a line item of a source order
type SourceLineItem struct {
	Title    string
	Quantity int
	Price    string
}

// ShopInfo describes the shop behind a source credential pair, as returned
// by the connectivity probe.
type ShopInfo struct {
	Name   string
	Domain string
	Email  string
}
