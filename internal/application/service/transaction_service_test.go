package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/entity"
	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/repository"
	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/schema"
	domainservice "github.com/dharmendra-007/personal-finance-tracker/internal/domain/service"
	"github.com/dharmendra-007/personal-finance-tracker/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var serviceNow = time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

const testID = "64b64c41f5d1a93a4e8b0a01"

// newTestService wires a service around mocks with a fixed clock. A nil
// events mock means no publisher is configured at all.
func newTestService(repo repository.TransactionRepository, events *mocks.MockEventPublisher) *TransactionService {
	var pub domainservice.EventPublisher
	if events != nil {
		pub = events
	}
	svc := NewTransactionService(repo, pub, mocks.NopLogger{})
	return svc.WithClock(func() time.Time { return serviceNow })
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid payload is normalized and stored", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		events := new(mocks.MockEventPublisher)
		svc := newTestService(repo, events)

		stored := &entity.Transaction{ID: testID, Amount: 120.5, Date: "2026-08-10", Description: "Groceries", Type: entity.TypeExpense}
		repo.On("Store", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Amount == 120.5 && tx.Description == "Groceries" && tx.Type == entity.TypeExpense
		})).Return(stored, nil).Once()
		events.On("TransactionCreated", ctx, testID).Return(nil).Once()

		got, err := svc.Create(ctx, []byte(`{"amount": 120.5, "date": "2026-08-10", "description": "  Groceries  ", "type": "expense"}`))

		require.NoError(t, err)
		assert.Equal(t, stored, got)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("amount is rounded to cents", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		svc := newTestService(repo, nil)

		repo.On("Store", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Amount == 10.56
		})).Return(&entity.Transaction{ID: testID}, nil).Once()

		_, err := svc.Create(ctx, []byte(`{"amount": 10.5578, "date": "2026-08-10", "description": "Lunch", "type": "expense"}`))

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("invalid payload never reaches the repository", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		svc := newTestService(repo, nil)

		_, err := svc.Create(ctx, []byte(`{"amount": -3, "date": "2026-08-10", "description": "Lunch", "type": "expense"}`))

		var list schema.ErrorList
		require.ErrorAs(t, err, &list)
		assert.True(t, list.Has("amount"))
		repo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	})

	t.Run("malformed body surfaces the sentinel", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		svc := newTestService(repo, nil)

		_, err := svc.Create(ctx, []byte(`{"amount":`))

		assert.ErrorIs(t, err, schema.ErrMalformedInput)
	})

	t.Run("storage failure is propagated", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		events := new(mocks.MockEventPublisher)
		svc := newTestService(repo, events)

		repo.On("Store", ctx, mock.Anything).Return(nil, errors.New("disk full")).Once()

		_, err := svc.Create(ctx, []byte(`{"amount": 5, "date": "2026-08-10", "description": "Lunch", "type": "expense"}`))

		require.Error(t, err)
		events.AssertNotCalled(t, "TransactionCreated", mock.Anything, mock.Anything)
	})

	t.Run("publish failure does not fail the write", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		events := new(mocks.MockEventPublisher)
		svc := newTestService(repo, events)

		repo.On("Store", ctx, mock.Anything).Return(&entity.Transaction{ID: testID}, nil).Once()
		events.On("TransactionCreated", ctx, testID).Return(errors.New("broker down")).Once()

		got, err := svc.Create(ctx, []byte(`{"amount": 5, "date": "2026-08-10", "description": "Lunch", "type": "expense"}`))

		require.NoError(t, err)
		assert.Equal(t, testID, got.ID)
	})
}

func TestReplace(t *testing.T) {
	ctx := context.Background()

	t.Run("valid replacement", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		events := new(mocks.MockEventPublisher)
		svc := newTestService(repo, events)

		updated := &entity.Transaction{ID: testID, Amount: 80, Date: "2026-08-01", Description: "Rent", Type: entity.TypeExpense}
		repo.On("Update", ctx, testID, mock.AnythingOfType("*entity.Transaction")).Return(updated, nil).Once()
		events.On("TransactionUpdated", ctx, testID).Return(nil).Once()

		got, err := svc.Replace(ctx, testID, []byte(`{"amount": 80, "date": "2026-08-01", "description": "Rent", "type": "expense"}`))

		require.NoError(t, err)
		assert.Equal(t, updated, got)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("bad identifier is rejected before validation", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		svc := newTestService(repo, nil)

		_, err := svc.Replace(ctx, "not-an-id", []byte(`{}`))

		var list schema.ErrorList
		require.ErrorAs(t, err, &list)
		assert.True(t, list.Has("id"))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown identifier maps to not found", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		svc := newTestService(repo, nil)

		repo.On("Update", ctx, testID, mock.Anything).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Replace(ctx, testID, []byte(`{"amount": 80, "date": "2026-08-01", "description": "Rent", "type": "expense"}`))

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestPatch(t *testing.T) {
	ctx := context.Background()
	existing := &entity.Transaction{ID: testID, Amount: 50, Date: "2026-07-01", Description: "Internet", Type: entity.TypeExpense}

	t.Run("merges onto the stored record", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		events := new(mocks.MockEventPublisher)
		svc := newTestService(repo, events)

		repo.On("FindByID", ctx, testID).Return(existing, nil).Once()
		repo.On("Update", ctx, testID, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Amount == 65 && tx.Date == "2026-07-01" && tx.Description == "Internet" && tx.Type == entity.TypeExpense
		})).Return(&entity.Transaction{ID: testID, Amount: 65}, nil).Once()
		events.On("TransactionUpdated", ctx, testID).Return(nil).Once()

		got, err := svc.Patch(ctx, testID, []byte(`{"amount": 65}`))

		require.NoError(t, err)
		assert.Equal(t, 65.0, got.Amount)
		repo.AssertExpectations(t)
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		svc := newTestService(repo, nil)

		_, err := svc.Patch(ctx, testID, []byte(`{}`))

		var list schema.ErrorList
		require.ErrorAs(t, err, &list)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("missing record surfaces not found", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		svc := newTestService(repo, nil)

		repo.On("FindByID", ctx, testID).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Patch(ctx, testID, []byte(`{"amount": 65}`))

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and announces", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		events := new(mocks.MockEventPublisher)
		svc := newTestService(repo, events)

		repo.On("Delete", ctx, testID).Return(nil).Once()
		events.On("TransactionDeleted", ctx, testID).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, testID))
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("bad identifier", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		svc := newTestService(repo, nil)

		err := svc.Delete(ctx, "short")

		var list schema.ErrorList
		require.ErrorAs(t, err, &list)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		svc := newTestService(repo, nil)

		repo.On("Delete", ctx, testID).Return(repository.ErrNotFound).Once()

		assert.ErrorIs(t, svc.Delete(ctx, testID), repository.ErrNotFound)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockTransactionRepository)
	svc := newTestService(repo, nil)

	txs := []entity.Transaction{{ID: testID, Amount: 5, Date: "2026-08-10", Description: "Lunch", Type: entity.TypeExpense}}
	repo.On("FindAll", ctx).Return(txs, nil).Once()

	got, err := svc.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, txs, got)
	repo.AssertExpectations(t)
}
