package shopify

// ordersResponse is the envelope of the Admin API orders listing
type ordersResponse struct {
	Orders []wireOrder `json:"orders"`
}

// shopResponse is the envelope of the Admin API shop endpoint
type shopResponse struct {
	Shop wireShop `json:"shop"`
}

type wireShop struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Email  string `json:"email"`
}

// wireOrder mirrors the Admin API order payload. Only the fields the
// ingestion pipeline reads are declared; everything else is dropped at
// decode time. Numeric ids arrive as JSON numbers, money as strings.
type wireOrder struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	Customer          *wireCustomer  `json:"customer"`
	ShippingAddress   *wireAddress   `json:"shipping_address"`
	BillingAddress    *wireAddress   `json:"billing_address"`
	LineItems         []wireLineItem `json:"line_items"`
	TotalPrice        string         `json:"total_price"`
	FinancialStatus   string         `json:"financial_status"`
	FulfillmentStatus string         `json:"fulfillment_status"`
	Phone             string         `json:"phone"`
	Email             string         `json:"email"`
	Note              string         `json:"note"`
	CreatedAt         string         `json:"created_at"`
	UpdatedAt         string         `json:"updated_at"`
}

type wireCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type wireAddress struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Phone    string `json:"phone"`
}

type wireLineItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}
