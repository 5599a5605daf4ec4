package db

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/entity"
	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryTransactionRepository is a thread-safe in-memory implementation
// of the transaction repository, used by tests and local development.
type MemoryTransactionRepository struct {
	mutex sync.RWMutex
	items map[string]entity.Transaction
}

// NewMemoryTransactionRepository creates an empty in-memory repository.
func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{
		items: make(map[string]entity.Transaction),
	}
}

// FindAll returns every transaction, date descending.
func (r *MemoryTransactionRepository) FindAll(ctx context.Context) ([]entity.Transaction, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	txs := make([]entity.Transaction, 0, len(r.items))
	for _, tx := range r.items {
		txs = append(txs, tx)
	}
	sortByDateDesc(txs)
	return txs, nil
}

// FindByID retrieves a transaction by its unique identifier.
func (r *MemoryTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	tx, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &tx, nil
}

// Store saves a new transaction, assigning identifier and timestamps.
func (r *MemoryTransactionRepository) Store(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := *tx
	stored.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.items[stored.ID] = stored
	return &stored, nil
}

// Update replaces the mutable fields of an existing transaction.
func (r *MemoryTransactionRepository) Update(ctx context.Context, id string, tx *entity.Transaction) (*entity.Transaction, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	existing.Amount = tx.Amount
	existing.Date = tx.Date
	existing.Description = tx.Description
	existing.Type = tx.Type
	existing.UpdatedAt = time.Now().UTC()

	r.items[id] = existing
	return &existing, nil
}

// Delete removes a transaction by its unique identifier.
func (r *MemoryTransactionRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// sortByDateDesc orders transactions newest date first, createdAt as
// tiebreak, matching the Mongo backend's default sort. ISO date strings
// compare correctly as plain strings.
func sortByDateDesc(txs []entity.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date > txs[j].Date
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
}
