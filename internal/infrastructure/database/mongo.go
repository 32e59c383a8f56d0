package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"library-backend/internal/config"
)

// Collection names shared by repositories and index setup.
const (
	AuthorsCollection  = "authors"
	BooksCollection    = "books"
	ContactsCollection = "contacts"
)

// Mongo wraps the client and the application database handle. Constructed
// once by the container and injected into repositories; no package-level
// connection state.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect establishes and verifies the MongoDB connection.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Mongo{
		Client: client,
		DB:     client.Database(cfg.Database),
	}, nil
}

// EnsureIndexes creates the indexes the application relies on. The unique
// indexes are the authoritative guard for email/isbn uniqueness; the
// application-level checks are a fast-fail convenience only.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	authorIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}
	if _, err := m.DB.Collection(AuthorsCollection).Indexes().CreateMany(ctx, authorIndexes); err != nil {
		return fmt.Errorf("failed to create author indexes: %w", err)
	}

	bookIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "isbn", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "authorId", Value: 1}},
		},
	}
	if _, err := m.DB.Collection(BooksCollection).Indexes().CreateMany(ctx, bookIndexes); err != nil {
		return fmt.Errorf("failed to create book indexes: %w", err)
	}

	contactIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	if _, err := m.DB.Collection(ContactsCollection).Indexes().CreateMany(ctx, contactIndexes); err != nil {
		return fmt.Errorf("failed to create contact indexes: %w", err)
	}

	return nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the server, used by the health endpoint.
func (m *Mongo) HealthCheck(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}
