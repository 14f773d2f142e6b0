package service

import (
	"github.com/anniehongsk/RIT-Marketplace/internal/domain/entity"
	"github.com/anniehongsk/RIT-Marketplace/pkg/errors"
)

// TransitionPolicy makes the order-type authorization rule explicit. The
// product pages present delivery-method selection as a buyer action, but the
// enforced rule has always been that only the seller drives chat updates;
// the policy keeps that decision in one place instead of scattering role
// checks across call paths.
type TransitionPolicy struct {
	// OrderTypeSelector is the chat role allowed to select the delivery
	// method.
	OrderTypeSelector entity.ChatRole
}

// DefaultPolicy preserves the established behavior: the seller performs all
// chat updates, order-type selection included.
func DefaultPolicy() TransitionPolicy {
	return TransitionPolicy{OrderTypeSelector: entity.RoleSeller}
}

// ChatTransaction validates state transitions on a chat and enforces who may
// perform them. It never mutates its inputs; persistence is the caller's
// concern.
type ChatTransaction struct {
	policy TransitionPolicy
}

func NewChatTransaction(policy TransitionPolicy) *ChatTransaction {
	return &ChatTransaction{policy: policy}
}

// SelectOrderType authorizes setting the chat's delivery method. The product
// must actually offer the requested method; this is checked here on every
// call path, not left to the client.
func (t *ChatTransaction) SelectOrderType(chat *entity.Chat, product *entity.Product, actorID int64, orderType entity.OrderType) error {
	role := chat.RoleOf(actorID)
	if role == entity.RoleNone {
		return errors.Forbidden("You are not a participant of this chat", nil)
	}
	if role != t.policy.OrderTypeSelector {
		return errors.Forbidden("You are not allowed to select the delivery method for this chat", nil)
	}
	if chat.IsCompleted {
		return errors.InvalidState("Chat is already completed", nil)
	}
	if !product.AllowsOrderType(orderType) {
		return errors.BadRequest("This delivery method is not offered for this listing", nil)
	}
	return nil
}

// Complete authorizes marking the chat completed. Completion is terminal and
// seller-only.
func (t *ChatTransaction) Complete(chat *entity.Chat, actorID int64) error {
	role := chat.RoleOf(actorID)
	if role == entity.RoleNone {
		return errors.Forbidden("You are not a participant of this chat", nil)
	}
	if role != entity.RoleSeller {
		return errors.Forbidden("Only the seller can complete a transaction", nil)
	}
	if chat.IsCompleted {
		return errors.InvalidState("Chat is already completed", nil)
	}
	return nil
}

// CanSendMessage authorizes message creation in the chat.
func (t *ChatTransaction) CanSendMessage(chat *entity.Chat, senderID int64) error {
	if chat.RoleOf(senderID) == entity.RoleNone {
		return errors.Forbidden("You are not a participant of this chat", nil)
	}
	if chat.IsCompleted {
		return errors.InvalidState("Chat is already completed", nil)
	}
	return nil
}
