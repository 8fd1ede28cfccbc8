package profile

import (
	"context"
	"errors"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultCollection holds one document per user, keyed by user id.
const DefaultCollection = "users"

// MongoStore is a DocumentStore backed by a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore uses collection DefaultCollection of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(DefaultCollection)}
}

// Merge runs a single upserting pipeline update so server timestamps and the
// create-only check are evaluated by MongoDB atomically.
func (s *MongoStore) Merge(ctx context.Context, id string, set, createOnly map[string]any) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		mergePipeline(set, createOnly),
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Find(ctx context.Context, id string) (*UserProfile, error) {
	var p UserProfile
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// mergePipeline builds [{$set: {...}}]. Plain values are wrapped in $literal
// so strings starting with "$" are never read as field paths.
func mergePipeline(set, createOnly map[string]any) mongo.Pipeline {
	stage := bson.D{}
	for _, k := range sortedKeys(set) {
		stage = append(stage, bson.E{Key: k, Value: pipelineValue(set[k])})
	}
	for _, k := range sortedKeys(createOnly) {
		stage = append(stage, bson.E{Key: k, Value: bson.D{
			{Key: "$ifNull", Value: bson.A{"$" + k, pipelineValue(createOnly[k])}},
		}})
	}
	return mongo.Pipeline{{{Key: "$set", Value: stage}}}
}

func pipelineValue(v any) any {
	if IsServerTimestamp(v) {
		return "$$NOW"
	}
	return bson.D{{Key: "$literal", Value: v}}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

var (
	_ DocumentStore = (*MongoStore)(nil)
	_ DocumentStore = (*MemoryStore)(nil)
)
