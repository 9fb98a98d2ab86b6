// Package archive stores network snapshots in MongoDB.
//
// The five-file text layout written by ktn.Dump stays the persistence
// format of record; the archive is a secondary store for sharing and
// retrieving whole snapshots across machines, each held as a single
// document containing the network's JSON encoding plus summary metadata.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/landscape/pkg/ktn"
)

// ErrSnapshotNotFound is returned by Pull when no snapshot has the given id.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// collection is the MongoDB collection holding snapshots.
const collection = "snapshots"

// Snapshot is the stored form of a network, summary fields first so List
// can project the (potentially large) document body away.
type Snapshot struct {
	ID        string    `bson:"_id"`
	Label     string    `bson:"label"`
	CreatedAt time.Time `bson:"created_at"`
	NMinima   int       `bson:"n_minima"`
	NTS       int       `bson:"n_ts"`
	Network   []byte    `bson:"network,omitempty"`
}

// Store is a MongoDB-backed snapshot archive.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Connect opens the archive at the given MongoDB URI and database name,
// verifying the connection with a ping.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect archive: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping archive: %w", err)
	}
	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Push stores the network under a fresh snapshot id and returns the id.
func (s *Store) Push(ctx context.Context, n *ktn.Network, label string) (string, error) {
	var buf bytes.Buffer
	if err := n.WriteJSON(&buf); err != nil {
		return "", err
	}
	snap := Snapshot{
		ID:        uuid.NewString(),
		Label:     label,
		CreatedAt: time.Now().UTC(),
		NMinima:   n.NMinima(),
		NTS:       n.NTS(),
		Network:   buf.Bytes(),
	}
	if _, err := s.coll.InsertOne(ctx, snap); err != nil {
		return "", fmt.Errorf("push snapshot: %w", err)
	}
	return snap.ID, nil
}

// Pull reconstructs the network stored under the given snapshot id.
func (s *Store) Pull(ctx context.Context, id string) (*ktn.Network, error) {
	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("snapshot %s: %w", id, ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("pull snapshot %s: %w", id, err)
	}
	n := ktn.New()
	if err := n.ReadJSON(bytes.NewReader(snap.Network)); err != nil {
		return nil, fmt.Errorf("pull snapshot %s: %w", id, err)
	}
	return n, nil
}

// List returns snapshot metadata, newest first, without the document
// bodies.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	opts := options.Find().
		SetProjection(bson.M{"network": 0}).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer cur.Close(ctx)

	var snaps []Snapshot
	if err := cur.All(ctx, &snaps); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snaps, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
