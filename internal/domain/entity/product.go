package entity

import "time"

type Product struct {
	ID          int64  `json:"id"`
	SellerID    int64  `json:"sellerId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Price is stored in minor currency units (cents).
	Price     int64    `json:"price"`
	Condition string   `json:"condition"`
	Category  string   `json:"category"`
	Location  string   `json:"location"`
	Images    []string `json:"images"`
	IsSold    bool     `json:"isSold"`

	AllowCampusMeetup bool `json:"allowCampusMeetup"`
	AllowDelivery     bool `json:"allowDelivery"`
	AllowPickup       bool `json:"allowPickup"`

	CreatedAt time.Time `json:"createdAt"`
}

// AllowsOrderType reports whether the seller enabled the given delivery
// method on this listing.
func (p *Product) AllowsOrderType(orderType OrderType) bool {
	switch orderType {
	case OrderTypeCampus:
		return p.AllowCampusMeetup
	case OrderTypeDelivery:
		return p.AllowDelivery
	case OrderTypePickup:
		return p.AllowPickup
	default:
		return false
	}
}
