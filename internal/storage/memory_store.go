package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// MemoryStore is an in-memory ObjectStore for tests. FailPut and FailRemove
// simulate upstream failures.
type MemoryStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	FailPut    bool
	FailRemove bool
}

// NewMemoryStore constructs the store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (s *MemoryStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	if s.FailPut {
		return "", errors.New("simulated upload failure")
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.objects[key] = buf.Bytes()
	s.mu.Unlock()
	return "memory://" + key, nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if s.FailRemove {
		return errors.New("simulated remove failure")
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// Has reports whether an object exists, for assertions.
func (s *MemoryStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok
}

// Len reports the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
