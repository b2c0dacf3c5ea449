// internal/output/mongodb.go
package output

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sampath2CSE/instagram-post-scraper/internal/pipeline"
)

// MongoWriter inserts records into a MongoDB collection. The map-shaped
// records translate directly into documents, so suppressed fields are
// absent rather than null.
type MongoWriter struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoWriter connects to MongoDB using the given URI.
func NewMongoWriter(uri, database, collection string) (*MongoWriter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to reach mongodb: %w", err)
	}

	return &MongoWriter{
		client:     client,
		database:   database,
		collection: collection,
	}, nil
}

// Write inserts the batch as individual documents.
func (w *MongoWriter) Write(ctx context.Context, records []pipeline.FinalRecord) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, len(records))
	for i, rec := range records {
		docs[i] = map[string]interface{}(rec)
	}

	coll := w.client.Database(w.database).Collection(w.collection)
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert records: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (w *MongoWriter) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.client.Disconnect(ctx)
}
