package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"backyard-leads/pkg/models"
)

type storedOrder struct {
	order     *models.Order
	expiresAt time.Time
}

// OrderStore is the transient hand-off between the checkout and success
// screens. Orders are keyed by an opaque token carried in a session cookie,
// written exactly once by checkout and read by the success page and the
// download endpoints. Nothing is persisted: an order lives until its TTL
// passes, so refreshing the success page and using both download links keep
// working within the session.
type OrderStore struct {
	orders map[string]*storedOrder
	mu     sync.RWMutex
	ttl    time.Duration
}

// NewOrderStore creates a store whose orders expire after ttl
func NewOrderStore(ttl time.Duration) *OrderStore {
	return &OrderStore{
		orders: make(map[string]*storedOrder),
		ttl:    ttl,
	}
}

// Put stores a fulfilled order and returns the session token for it
func (s *OrderStore) Put(order *models.Order) string {
	token := uuid.NewString()

	s.mu.Lock()
	s.orders[token] = &storedOrder{
		order:     order,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	// Drop the order once the session window closes
	go func() {
		time.Sleep(s.ttl)
		s.mu.Lock()
		delete(s.orders, token)
		s.mu.Unlock()
	}()

	return token
}

// Get returns the order for a token. Reads do not consume: the success page
// may be refreshed and each download link reads the same order. A missing or
// expired token returns false, and the success page degrades instead of erroring
// because a user may deep-link there.
func (s *OrderStore) Get(token string) (*models.Order, bool) {
	s.mu.RLock()
	stored, exists := s.orders[token]
	s.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Now().After(stored.expiresAt) {
		s.mu.Lock()
		delete(s.orders, token)
		s.mu.Unlock()
		return nil, false
	}

	return stored.order, true
}
