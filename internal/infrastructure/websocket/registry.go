package websocket

import (
	"encoding/json"
	"sync"

	"github.com/anniehongsk/RIT-Marketplace/pkg/logger"
)

// Notifier is the fan-out surface the chat use case writes realtime events
// to. Delivery is fire-and-forget: a user with no live connections is a no-op,
// never an error.
type Notifier interface {
	SendToUser(userID int64, event interface{})
	BroadcastAll(event interface{})
}

// Registry tracks the live connections of each authenticated user. A user may
// hold several connections at once (multiple tabs or devices), so the value
// is a set, not a single handle.
type Registry struct {
	mutex   sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[int64]map[*Client]struct{}),
	}
}

// Register adds a client to its user's connection set.
func (r *Registry) Register(client *Client) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	set, ok := r.clients[client.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		r.clients[client.UserID] = set
	}
	set[client] = struct{}{}

	logger.Info("Client registered for user %d (%d connections)", client.UserID, len(set))
}

// Unregister removes a client and drops the user's entry once the set is
// empty, so disconnected users do not accumulate.
func (r *Registry) Unregister(client *Client) {
	r.mutex.Lock()
	if set, ok := r.clients[client.UserID]; ok {
		if _, present := set[client]; present {
			delete(set, client)
			if len(set) == 0 {
				delete(r.clients, client.UserID)
			}
			logger.Info("Client unregistered for user %d", client.UserID)
		}
	}
	r.mutex.Unlock()

	client.detach()
}

// SendToUser delivers the event to every live connection of the user.
func (r *Registry) SendToUser(userID int64, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event for user %d: %v", userID, err)
		return
	}

	for _, client := range r.snapshot(userID) {
		r.deliver(client, payload)
	}
}

// BroadcastAll delivers the event to every registered connection of every
// user. Used for public events such as a listing being sold.
func (r *Registry) BroadcastAll(event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal broadcast event: %v", err)
		return
	}

	r.mutex.RLock()
	clients := make([]*Client, 0, len(r.clients))
	for _, set := range r.clients {
		for client := range set {
			clients = append(clients, client)
		}
	}
	r.mutex.RUnlock()

	for _, client := range clients {
		r.deliver(client, payload)
	}
}

// ConnectionCount reports the number of live connections for a user.
func (r *Registry) ConnectionCount(userID int64) int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.clients[userID])
}

func (r *Registry) snapshot(userID int64) []*Client {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	set := r.clients[userID]
	if len(set) == 0 {
		return nil
	}
	clients := make([]*Client, 0, len(set))
	for client := range set {
		clients = append(clients, client)
	}
	return clients
}

// deliver hands the payload to the client's write pump without blocking. A
// client whose buffer is full is treated as dead and detached instead of
// stalling the registry operation.
func (r *Registry) deliver(client *Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		logger.Warn("Client send buffer full for user %d, dropping connection", client.UserID)
		r.Unregister(client)
	}
}
