package entitlements

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu   sync.RWMutex
	data map[string]Entitlement
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]Entitlement)}
}

func (s *memoryStore) Get(ctx context.Context, userID string) (Entitlement, error) {
	if err := ctx.Err(); err != nil {
		return Entitlement{}, err
	}
	s.mu.RLock()
	e, ok := s.data[userID]
	s.mu.RUnlock()
	if !ok {
		return freeEntitlement(), nil
	}
	return e, nil
}

func (s *memoryStore) Grant(ctx context.Context, userID, receiptID string, at time.Time) (Entitlement, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entitlement{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.data[userID]; ok && e.Unlocked {
		return e, false, nil
	}
	at = at.UTC()
	e := Entitlement{
		Plan:       PlanPremium,
		Unlocked:   true,
		ReceiptID:  receiptID,
		UnlockedAt: &at,
	}
	s.data[userID] = e
	return e, true, nil
}

func (s *memoryStore) Reset(ctx context.Context, userID string) (Entitlement, error) {
	if err := ctx.Err(); err != nil {
		return Entitlement{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return freeEntitlement(), nil
}
