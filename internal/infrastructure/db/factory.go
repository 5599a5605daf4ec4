package db

import (
	"context"
	"fmt"

	"github.com/dharmendra-007/personal-finance-tracker/internal/config"
	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/repository"
	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/logger"
	"github.com/dgraph-io/badger/v3"
)

// CloseFunc releases whatever resources a backend holds.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// NewRepository builds the transaction repository selected by the
// configuration and returns it together with its close function.
func NewRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.TransactionRepository, CloseFunc, error) {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	switch cfg.DataBackend {
	case config.BackendMongo:
		client, err := ConnectMongo(ctx, cfg.MongoURI, log)
		if err != nil {
			return nil, nil, err
		}
		repo := NewMongoTransactionRepository(client.Database(cfg.MongoDatabase))
		log.Info("Initialized MongoDB backend", map[string]interface{}{
			"database": cfg.MongoDatabase,
		})
		return repo, client.Disconnect, nil

	case config.BackendBadger:
		opts := badger.DefaultOptions(cfg.BadgerPath)
		opts.Logger = nil // Badger's own logger is too chatty
		badgerDB, err := badger.Open(opts)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open badger database: %w", err)
		}
		log.Info("Initialized Badger backend", map[string]interface{}{
			"path": cfg.BadgerPath,
		})
		return NewBadgerTransactionRepository(badgerDB), func(context.Context) error {
			return badgerDB.Close()
		}, nil

	case config.BackendMemory:
		log.Info("Initialized memory backend", nil)
		return NewMemoryTransactionRepository(), noopClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
