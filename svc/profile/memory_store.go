package profile

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process DocumentStore.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
	now  func() time.Time
}

// NewMemoryStore returns an empty store. now defaults to time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{docs: make(map[string]map[string]any), now: now}
}

func (m *MemoryStore) Merge(_ context.Context, id string, set, createOnly map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	resolve := func(v any) any {
		if IsServerTimestamp(v) {
			return now
		}
		return v
	}

	doc, ok := m.docs[id]
	if !ok {
		doc = make(map[string]any)
		m.docs[id] = doc
	}
	for k, v := range set {
		doc[k] = resolve(v)
	}
	for k, v := range createOnly {
		if _, exists := doc[k]; !exists {
			doc[k] = resolve(v)
		}
	}
	return nil
}

func (m *MemoryStore) Find(_ context.Context, id string) (*UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}

	p := &UserProfile{UserID: id}
	p.Email, _ = doc[FieldEmail].(string)
	p.Name, _ = doc[FieldName].(string)
	p.EmailVerified, _ = doc[FieldEmailVerified].(bool)
	p.Provider, _ = doc[FieldProvider].(string)
	p.PhotoURL, _ = doc[FieldPhotoURL].(string)
	p.CreatedAt, _ = doc[FieldCreatedAt].(time.Time)
	p.LastLogin, _ = doc[FieldLastLogin].(time.Time)
	p.UpdatedAt, _ = doc[FieldUpdatedAt].(time.Time)
	return p, nil
}
