package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/graphscribe/graphscribe/pkg/errors"
	"github.com/graphscribe/graphscribe/pkg/graph"
)

// MemoryStore keeps snapshots in process memory. It is the default backend
// for serve when no Mongo URI is configured, and the fixture store in tests.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]Snapshot)}
}

// Put stores a snapshot under a fresh UUID.
func (s *MemoryStore) Put(ctx context.Context, g graph.Graph) (string, error) {
	snap := Snapshot{
		ID:        uuid.NewString(),
		Name:      g.Name,
		Graph:     g,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.snapshots[snap.ID] = snap
	s.mu.Unlock()
	return snap.ID, nil
}

// Get retrieves a snapshot by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[id]
	s.mu.RUnlock()

	if !ok {
		return Snapshot{}, errors.New(errors.ErrCodeGraphNotFound, "no snapshot with id %q", id)
	}
	return snap, nil
}

// List returns all snapshots, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]Snapshot, error) {
	s.mu.RLock()
	out := make([]Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
