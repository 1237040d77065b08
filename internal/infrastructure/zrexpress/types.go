package zrexpress

import "github.com/a7delivery/backend/internal/domain/order"

// colis is the delivery API's parcel record. Field names and the "Confrimee"
// spelling are fixed by the upstream contract; every value travels as a
// string, booleans as "0"/"1".
type colis struct {
	Tracking      string `json:"Tracking"`
	TypeLivraison string `json:"TypeLivraison"` // "0" home delivery, "1" pickup point
	TypeColis     string `json:"TypeColis"`     // "0" regular, "1" exchange
	Confrimee     string `json:"Confrimee"`     // "1" pre-confirmed, "" otherwise
	Client        string `json:"Client"`
	MobileA       string `json:"MobileA"`
	MobileB       string `json:"MobileB"`
	Adresse       string `json:"Adresse"`
	IDWilaya      string `json:"IDWilaya"`
	Commune       string `json:"Commune"`
	Total         string `json:"Total"`
	Note          string `json:"Note"`
	TProduit      string `json:"TProduit"`
	ExternalID    string `json:"id_Externe"`
	Source        string `json:"Source"`
}

// addColisRequest is the batch envelope for parcel submission
type addColisRequest struct {
	Colis []colis `json:"Colis"`
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func confirmFlag(v bool) string {
	if v {
		return "1"
	}
	return ""
}

// toColis maps a domain shipment onto the wire record
func toColis(s order.Shipment) colis {
	return colis{
		Tracking:      s.TrackingCode,
		TypeLivraison: boolFlag(!s.HomeDelivery),
		TypeColis:     boolFlag(s.ExchangeParcel),
		Confrimee:     confirmFlag(s.PreConfirmed),
		Client:        s.RecipientName,
		MobileA:       s.RecipientPhone,
		MobileB:       s.SecondaryPhone,
		Adresse:       s.Address,
		IDWilaya:      s.RegionCode,
		Commune:       s.Commune,
		Total:         s.TotalCents,
		Note:          s.Note,
		TProduit:      s.ProductSummary,
		ExternalID:    s.ExternalID,
		Source:        s.Source,
	}
}
