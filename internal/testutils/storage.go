// Package testutils provides shared test doubles for the storage and
// API boundaries.
package testutils

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Jurgensen-SJB/supermercado/internal/storage"
)

// MemStore is an in-memory storage.Store. Payloads are held as raw JSON
// so tests can seed corrupt entries and inspect exactly what was
// persisted.
type MemStore struct {
	Data     map[string]json.RawMessage
	FailWith error // when set, every operation fails with this error
}

func NewMemStore() *MemStore {
	return &MemStore{Data: make(map[string]json.RawMessage)}
}

// SeedRaw stores an arbitrary payload, valid JSON or not.
func (m *MemStore) SeedRaw(key, payload string) {
	m.Data[key] = json.RawMessage(payload)
}

func (m *MemStore) Get(_ context.Context, key string, value any) (bool, error) {
	if m.FailWith != nil {
		return false, m.FailWith
	}

	data, ok := m.Data[key]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to decode key %s: %w: %w", key, storage.ErrMalformed, err)
	}

	return true, nil
}

func (m *MemStore) Set(_ context.Context, key string, value any) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.Data[key] = data

	return nil
}

func (m *MemStore) Delete(_ context.Context, key string) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	delete(m.Data, key)

	return nil
}
