package storage

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// MemoryStore keeps objects in process memory and records every call. Used by
// tests and by STORAGE_DRIVER=memory for local runs.
type MemoryStore struct {
	mu      sync.Mutex
	baseURL string
	objects map[string][]byte
	types   map[string]string

	Uploads []string
	Deletes []string

	// Failure injection
	UploadErr error
	DeleteErr error
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: baseURL,
		objects: map[string][]byte{},
		types:   map[string]string{},
	}
}

func (m *MemoryStore) PublicURL(key string) string {
	return m.baseURL + "/" + key
}

func (m *MemoryStore) Upload(ctx context.Context, key, contentType string, data []byte) (Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if key == "" {
		return Object{}, ErrEmptyKey
	}
	if m.UploadErr != nil {
		return Object{}, m.UploadErr
	}
	if _, exists := m.objects[key]; exists {
		return Object{}, errors.Errorf("memory store: %s already exists", key)
	}
	m.objects[key] = append([]byte(nil), data...)
	m.types[key] = contentType
	m.Uploads = append(m.Uploads, key)
	return Object{Key: key, URL: m.baseURL + "/" + key}, nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes = append(m.Deletes, key)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.objects, key)
	delete(m.types, key)
	return nil
}

func (m *MemoryStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

func (m *MemoryStore) ContentType(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.types[key]
}
