package repository

import (
	"context"
	"errors"

	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/entity"
)

// ErrNotFound is returned by lookups, updates and deletes when no record
// matches the given identifier. It is never conflated with validation
// failures; the transport layer maps it to a 404.
var ErrNotFound = errors.New("transaction not found")

// TransactionRepository defines the interface for transaction storage.
// Implementations assign the 24-hex identifier and the createdAt and
// updatedAt timestamps; callers never set them.
type TransactionRepository interface {
	// FindAll returns every transaction, sorted by date descending
	// (createdAt descending as tiebreak).
	FindAll(ctx context.Context) ([]entity.Transaction, error)

	// FindByID retrieves a transaction by its unique identifier.
	FindByID(ctx context.Context, id string) (*entity.Transaction, error)

	// Store saves a new transaction and returns the stored record with
	// identifier and timestamps filled in.
	Store(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error)

	// Update fully replaces the mutable fields of the record with the
	// given identifier, preserving createdAt and refreshing updatedAt.
	Update(ctx context.Context, id string, tx *entity.Transaction) (*entity.Transaction, error)

	// Delete removes the record with the given identifier.
	Delete(ctx context.Context, id string) error
}
