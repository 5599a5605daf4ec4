package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/entity"
	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/repository"
	"github.com/dgraph-io/badger/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const txKeyPrefix = "tx:"

// BadgerTransactionRepository implements the transaction repository
// interface using BadgerDB, an embedded key-value store. Records are
// stored as JSON under "tx:<id>" keys and sorted in process; the
// collection is small enough that a full scan per list is fine.
type BadgerTransactionRepository struct {
	db *badger.DB
}

// NewBadgerTransactionRepository creates a new BadgerDB transaction repository
func NewBadgerTransactionRepository(db *badger.DB) *BadgerTransactionRepository {
	return &BadgerTransactionRepository{db: db}
}

// FindAll returns every transaction, date descending.
func (r *BadgerTransactionRepository) FindAll(ctx context.Context) ([]entity.Transaction, error) {
	var txs []entity.Transaction

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(txKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var tx entity.Transaction
				if err := json.Unmarshal(val, &tx); err != nil {
					return err
				}
				txs = append(txs, tx)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	sortByDateDesc(txs)
	return txs, nil
}

// FindByID retrieves a transaction by its unique identifier
func (r *BadgerTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var tx entity.Transaction

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(txKeyPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tx)
		})
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transaction: %w", err)
	}

	return &tx, nil
}

// Store saves a new transaction, assigning identifier and timestamps.
// Identifiers use the same 24-hex ObjectID format the Mongo backend
// produces, so backends stay interchangeable.
func (r *BadgerTransactionRepository) Store(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	stored := *tx
	stored.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if err := r.put(&stored); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}
	return &stored, nil
}

// Update replaces the mutable fields of an existing transaction.
func (r *BadgerTransactionRepository) Update(ctx context.Context, id string, tx *entity.Transaction) (*entity.Transaction, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Amount = tx.Amount
	updated.Date = tx.Date
	updated.Description = tx.Description
	updated.Type = tx.Type
	updated.UpdatedAt = time.Now().UTC()

	if err := r.put(&updated); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return &updated, nil
}

// Delete removes a transaction by its unique identifier
func (r *BadgerTransactionRepository) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		key := []byte(txKeyPrefix + id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (r *BadgerTransactionRepository) put(tx *entity.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(txKeyPrefix+tx.ID), data)
	})
}
