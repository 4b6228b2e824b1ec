// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pdiddy/scoreid-export/pkg/types"
)

// MongoSource reads one MongoDB collection.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects to cfg.URI and pings the primary. mongo.Connect does
// not dial, so the ping is what surfaces an unreachable server.
func OpenMongo(ctx context.Context, cfg types.StoreConfig) (*MongoSource, error) {
	if cfg.Database == "" || cfg.Collection == "" {
		return nil, fmt.Errorf("mongo store requires database and collection")
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.URI, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("connecting to %s: %w", cfg.URI, err)
	}

	return &MongoSource{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Find runs an equality query and returns a cursor over the matches.
func (s *MongoSource) Find(ctx context.Context, f Filter) (Cursor, error) {
	cur, err := s.coll.Find(ctx, mongoFilter(f))
	if err != nil {
		return nil, fmt.Errorf("querying %s (%s): %w", s.coll.Name(), f, err)
	}
	return &mongoCursor{cur: cur}, nil
}

// Insert adds docs to the collection.
func (s *MongoSource) Insert(ctx context.Context, docs []types.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	batch := make([]interface{}, len(docs))
	for i, d := range docs {
		batch[i] = bson.M(d)
	}
	res, err := s.coll.InsertMany(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("inserting into %s: %w", s.coll.Name(), err)
	}
	return len(res.InsertedIDs), nil
}

// Close disconnects the client.
func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func mongoFilter(f Filter) bson.D {
	return bson.D{{Key: f.Path, Value: f.Value}}
}

type mongoCursor struct {
	cur *mongo.Cursor
}

func (c *mongoCursor) Next(ctx context.Context) bool { return c.cur.Next(ctx) }
func (c *mongoCursor) Err() error { return c.cur.Err() }
func (c *mongoCursor) Close(ctx context.Context) error {
	return c.cur.Close(ctx)
}

func (c *mongoCursor) Decode() (types.Document, error) {
	var raw bson.M
	if err := c.cur.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return types.Document(normalizeBSON(map[string]interface{}(raw)).(map[string]any)), nil
}

// normalizeBSON converts driver container types into plain maps and
// slices so nested lookups do not depend on how the driver decoded them.
func normalizeBSON(v any) any {
	switch t := v.(type) {
	case primitive.M:
		return normalizeBSON(map[string]interface{}(t))
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeBSON(e)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case primitive.A:
		return normalizeBSON([]interface{}(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeBSON(e)
		}
		return out
	default:
		return v
	}
}
