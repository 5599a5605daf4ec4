package db

import (
	"context"
	"fmt"

	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TransactionsCollection is the MongoDB collection transactions live in.
const TransactionsCollection = "transactions"

// ConnectMongo establishes and verifies a connection to MongoDB.
func ConnectMongo(ctx context.Context, uri string, log logger.Logger) (*mongo.Client, error) {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	log.Debug("Connecting to MongoDB", map[string]interface{}{"uri": uri})

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("Connected to MongoDB", nil)
	return client, nil
}
