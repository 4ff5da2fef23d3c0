// Package store persists graph snapshots so transcripts can be re-rendered
// without re-dumping the graph from the editor process.
//
// Two backends are provided: an in-memory store for single-process serve
// deployments and tests, and a MongoDB store for durable multi-instance
// deployments. Snapshots are immutable once stored - a new dump of the same
// graph gets a new id.
package store

import (
	"context"
	"time"

	"github.com/graphscribe/graphscribe/pkg/graph"
)

// Snapshot is one stored graph dump plus bookkeeping.
type Snapshot struct {
	ID        string      `json:"id" bson:"_id"`
	Name      string      `json:"name" bson:"name"`
	Graph     graph.Graph `json:"graph" bson:"graph"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// Store saves and retrieves graph snapshots.
type Store interface {
	// Put stores a snapshot and returns its generated id.
	Put(ctx context.Context, g graph.Graph) (string, error)
	// Get retrieves a snapshot by id. A missing id yields an error with
	// code GRAPH_NOT_FOUND.
	Get(ctx context.Context, id string) (Snapshot, error)
	// List returns stored snapshots, newest first.
	List(ctx context.Context) ([]Snapshot, error)
	// Close releases backend resources.
	Close(ctx context.Context) error
}
