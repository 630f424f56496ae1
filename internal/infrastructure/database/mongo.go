package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	PlayersCollection  = "players"
	CountersCollection = "counters"
)

// Unique index names. Duplicate key errors are mapped back to fields through these.
const (
	IndexPlayerID       = "uniq_player_id"
	IndexUserID         = "uniq_user_id"
	IndexSequenceNumber = "uniq_sequence_number"
	IndexEmail          = "uniq_email"
	IndexUsername       = "uniq_username"
	IndexPhone          = "uniq_phone"
)

// MongoDBClient wraps the driver client.
type MongoDBClient struct {
	Client *mongo.Client
}

// NewMongoDBClient connects to MongoDB and verifies the connection with a ping.
func NewMongoDBClient(uri string, timeout time.Duration) (*MongoDBClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return &MongoDBClient{Client: client}, nil
}

// Disconnect closes the client.
func (m *MongoDBClient) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// PlayerIndexes returns the index models of the players collection.
func PlayerIndexes() []mongo.IndexModel {
	unique := func(field, name string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(name),
		}
	}
	return []mongo.IndexModel{
		unique("player_id", IndexPlayerID),
		unique("user_id", IndexUserID),
		unique("sequence_number", IndexSequenceNumber),
		unique("email", IndexEmail),
		unique("username", IndexUsername),
		unique("phone", IndexPhone),
		{Keys: bson.D{{Key: "role", Value: 1}}},
		{Keys: bson.D{{Key: "state", Value: 1}}},
		{Keys: bson.D{{Key: "registration_date", Value: -1}}},
	}
}

// EnsureIndexes creates the players collection indexes if they do not exist.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(PlayersCollection).Indexes().CreateMany(ctx, PlayerIndexes()); err != nil {
		return fmt.Errorf("failed to create player indexes: %w", err)
	}
	return nil
}
