package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"eduraksha/internal/wallet/models"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return ErrNotFound when the requested credential does not exist
// - Return ErrDuplicate when inserting an id that is already present
// - Return errors matching ErrPersist (errors.Is) when the durable snapshot
//   write fails; the in-memory mutation is rolled back first
// - Return nil for successful operations

var (
	ErrNotFound  = errors.New("credential not found")
	ErrDuplicate = errors.New("credential id already exists")
	ErrPersist   = errors.New("snapshot persistence failed")
)

// snapshotKey is the single fixed key the full credential set lives under.
const snapshotKey = "wallet/credentials"

// InMemoryStore keeps the credential set in memory in insertion order and
// writes the full set through the KV port on every mutation. Reads return
// copies so callers can never mutate stored state.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []*models.Credential
	index   map[string]int
	kv      KV
}

// New constructs a store backed by kv, loading any existing snapshot.
func New(kv KV) (*InMemoryStore, error) {
	s := &InMemoryStore{
		index: make(map[string]int),
		kv:    kv,
	}
	raw, ok, err := kv.Get(snapshotKey)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if ok && raw != "" {
		var creds []models.Credential
		if err := json.Unmarshal([]byte(raw), &creds); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		for i := range creds {
			c := creds[i]
			s.index[c.ID] = len(s.records)
			s.records = append(s.records, &c)
		}
	}
	return s, nil
}

// Insert adds a new credential and persists the set.
func (s *InMemoryStore) Insert(_ context.Context, cred *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[cred.ID]; exists {
		return ErrDuplicate
	}
	s.index[cred.ID] = len(s.records)
	s.records = append(s.records, cred.Clone())

	if err := s.persistLocked(); err != nil {
		// Roll back so memory never diverges from durable state.
		s.records = s.records[:len(s.records)-1]
		delete(s.index, cred.ID)
		return err
	}
	return nil
}

// Get returns a copy of the credential with the given id.
func (s *InMemoryStore) Get(_ context.Context, id string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.records[pos].Clone(), nil
}

// Update replaces the stored credential with the same id and persists the set.
func (s *InMemoryStore) Update(_ context.Context, cred *models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[cred.ID]
	if !ok {
		return ErrNotFound
	}
	previous := s.records[pos]
	s.records[pos] = cred.Clone()

	if err := s.persistLocked(); err != nil {
		s.records[pos] = previous
		return err
	}
	return nil
}

// Remove deletes the credential with the given id and persists the set.
func (s *InMemoryStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	previousRecords := s.records
	previousIndex := s.index

	s.records = make([]*models.Credential, 0, len(previousRecords)-1)
	s.records = append(s.records, previousRecords[:pos]...)
	s.records = append(s.records, previousRecords[pos+1:]...)
	s.reindexLocked()

	if err := s.persistLocked(); err != nil {
		s.records = previousRecords
		s.index = previousIndex
		return err
	}
	return nil
}

// List returns copies of all credentials in insertion order.
func (s *InMemoryStore) List(_ context.Context) ([]*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Credential, 0, len(s.records))
	for _, c := range s.records {
		out = append(out, c.Clone())
	}
	return out, nil
}

// ReplaceAll swaps the whole credential set, persisting the result. Used by
// backup restore; pass nil to clear the store.
func (s *InMemoryStore) ReplaceAll(_ context.Context, creds []*models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	previousRecords := s.records
	previousIndex := s.index

	s.records = make([]*models.Credential, 0, len(creds))
	s.index = make(map[string]int, len(creds))
	for _, c := range creds {
		if _, exists := s.index[c.ID]; exists {
			s.records = previousRecords
			s.index = previousIndex
			return ErrDuplicate
		}
		s.index[c.ID] = len(s.records)
		s.records = append(s.records, c.Clone())
	}

	if err := s.persistLocked(); err != nil {
		s.records = previousRecords
		s.index = previousIndex
		return err
	}
	return nil
}

// Count returns the number of stored credentials.
func (s *InMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *InMemoryStore) reindexLocked() {
	s.index = make(map[string]int, len(s.records))
	for i, c := range s.records {
		s.index[c.ID] = i
	}
}

// persistLocked serializes the full set under the fixed snapshot key.
// Callers must hold the write lock.
func (s *InMemoryStore) persistLocked() error {
	creds := make([]models.Credential, 0, len(s.records))
	for _, c := range s.records {
		creds = append(creds, *c)
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("%w: encode snapshot: %v", ErrPersist, err)
	}
	if err := s.kv.Set(snapshotKey, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
