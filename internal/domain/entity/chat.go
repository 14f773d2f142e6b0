package entity

import "time"

type OrderType string

const (
	OrderTypeCampus   OrderType = "campus"
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

// ParseOrderType validates a wire-level order type value.
func ParseOrderType(s string) (OrderType, bool) {
	switch OrderType(s) {
	case OrderTypeCampus, OrderTypeDelivery, OrderTypePickup:
		return OrderType(s), true
	default:
		return "", false
	}
}

// Chat is a per-listing negotiation thread between one buyer and the
// listing's seller. At most one chat exists per (product, buyer, seller).
type Chat struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
	BuyerID   int64 `json:"buyerId"`
	SellerID  int64 `json:"sellerId"`
	// OrderType is nil until the delivery method has been selected.
	OrderType   *OrderType `json:"orderType"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type ChatRole int

const (
	RoleNone ChatRole = iota
	RoleBuyer
	RoleSeller
)

// RoleOf returns the chat role of the given user, RoleNone for
// non-participants.
func (c *Chat) RoleOf(userID int64) ChatRole {
	switch userID {
	case c.BuyerID:
		return RoleBuyer
	case c.SellerID:
		return RoleSeller
	default:
		return RoleNone
	}
}

// OtherParticipant returns the counterparty of userID in this chat. The
// caller must already have verified that userID is a participant.
func (c *Chat) OtherParticipant(userID int64) int64 {
	if userID == c.SellerID {
		return c.BuyerID
	}
	return c.SellerID
}
