package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ecotrust/arbcarbon/pkg/errors"
)

// MongoConfig configures the MongoDB run store.
type MongoConfig struct {
	URI        string // e.g. mongodb://localhost:27017
	Database   string // default "arbcarbon"
	Collection string // default "runs"
	Timeout    time.Duration
}

const (
	defaultMongoDatabase   = "arbcarbon"
	defaultMongoCollection = "runs"
	defaultMongoTimeout    = 10 * time.Second
)

// MongoStore persists runs in a MongoDB collection.
type MongoStore struct {
	client  *mongo.Client
	runs    *mongo.Collection
	timeout time.Duration
}

// NewMongoStore connects to MongoDB, verifies the connection, and ensures
// the created_at index used by ListRuns.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo URI is required")
	}
	if cfg.Database == "" {
		cfg.Database = defaultMongoDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultMongoCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultMongoTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "connect to mongodb")
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeIO, err, "ping mongodb")
	}

	runs := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = runs.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create runs index")
	}

	return &MongoStore{client: client, runs: runs, timeout: cfg.Timeout}, nil
}

func (s *MongoStore) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "run has no ID")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.runs.InsertOne(ctx, run); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "insert run %s", run.ID)
	}
	return nil
}

func (s *MongoStore) GetRun(ctx context.Context, id string) (*Run, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var run Run
	err := s.runs.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "run %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "find run %s", id)
	}
	return &run, nil
}

func (s *MongoStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.runs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list runs")
	}
	defer cursor.Close(ctx)

	var runs []Run
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "decode runs")
	}
	return runs, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
