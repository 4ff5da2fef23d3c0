package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/graphscribe/graphscribe/pkg/errors"
	"github.com/graphscribe/graphscribe/pkg/graph"
)

const (
	mongoDatabase   = "graphscribe"
	mongoCollection = "snapshots"
)

// MongoStore persists snapshots in a MongoDB collection for durable
// multi-instance serve deployments.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and verifies the connection with
// a ping before returning.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

// Put stores a snapshot under a fresh UUID.
func (s *MongoStore) Put(ctx context.Context, g graph.Graph) (string, error) {
	snap := Snapshot{
		ID:        uuid.NewString(),
		Name:      g.Name,
		Graph:     g,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, snap); err != nil {
		return "", errors.Wrap(errors.ErrCodeStore, err, "insert snapshot")
	}
	return snap.ID, nil
}

// Get retrieves a snapshot by id.
func (s *MongoStore) Get(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if err == mongo.ErrNoDocuments {
		return Snapshot{}, errors.New(errors.ErrCodeGraphNotFound, "no snapshot with id %q", id)
	}
	if err != nil {
		return Snapshot{}, errors.Wrap(errors.ErrCodeStore, err, "find snapshot %s", id)
	}
	return snap, nil
}

// List returns all snapshots, newest first.
func (s *MongoStore) List(ctx context.Context) ([]Snapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list snapshots")
	}
	defer cursor.Close(ctx)

	var out []Snapshot
	if err := cursor.All(ctx, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode snapshots")
	}
	return out, nil
}

// Close disconnects the Mongo client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
