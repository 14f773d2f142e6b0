package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderType(t *testing.T) {
	for _, valid := range []string{"campus", "delivery", "pickup"} {
		parsed, ok := ParseOrderType(valid)
		assert.True(t, ok)
		assert.Equal(t, OrderType(valid), parsed)
	}

	for _, invalid := range []string{"", "Campus", "shipping"} {
		_, ok := ParseOrderType(invalid)
		assert.False(t, ok)
	}
}

func TestChatRoles(t *testing.T) {
	chat := &Chat{ID: 5, ProductID: 10, BuyerID: 2, SellerID: 1}

	assert.Equal(t, RoleBuyer, chat.RoleOf(2))
	assert.Equal(t, RoleSeller, chat.RoleOf(1))
	assert.Equal(t, RoleNone, chat.RoleOf(99))

	assert.Equal(t, int64(1), chat.OtherParticipant(2))
	assert.Equal(t, int64(2), chat.OtherParticipant(1))
}

func TestProductAllowsOrderType(t *testing.T) {
	product := &Product{AllowCampusMeetup: true, AllowPickup: true}

	assert.True(t, product.AllowsOrderType(OrderTypeCampus))
	assert.True(t, product.AllowsOrderType(OrderTypePickup))
	assert.False(t, product.AllowsOrderType(OrderTypeDelivery))
	assert.False(t, product.AllowsOrderType(OrderType("shipping")))
}
