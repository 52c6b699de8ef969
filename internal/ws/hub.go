package ws

import (
	"encoding/json"
	"sync"

	"wallet_backend/internal/domain"
	"wallet_backend/internal/logger"
)

// Hub tracks connected clients per user and fans out balance events.
// It implements service.BalanceNotifier.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.UserID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	if _, present := set[c]; !present {
		return
	}
	delete(set, c)
	close(c.Send)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
}

// NotifyBalance pushes a committed balance change to every client of the
// user. Slow clients are skipped rather than blocking the caller.
func (h *Hub) NotifyBalance(userID, balance int64, tx *domain.Transaction) {
	msg, err := json.Marshal(BalanceEvent{
		Type:        "balance",
		UserID:      userID,
		Balance:     balance,
		Transaction: tx,
	})
	if err != nil {
		logger.Error("marshal balance event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("dropping balance event for slow client", "user_id", userID)
		}
	}
}

// ClientCount returns the number of open connections for a user.
func (h *Hub) ClientCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
