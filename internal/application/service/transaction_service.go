package service

import (
	"context"
	"math"
	"time"

	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/entity"
	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/repository"
	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/schema"
	domainservice "github.com/dharmendra-007/personal-finance-tracker/internal/domain/service"
	"github.com/dharmendra-007/personal-finance-tracker/internal/infrastructure/logger"
)

// TransactionService handles business logic for transactions: it runs
// every payload through the schema rules before the repository ever
// sees it, and announces changes on the event publisher when one is
// configured.
type TransactionService struct {
	repo   repository.TransactionRepository
	events domainservice.EventPublisher
	log    logger.Logger
	now    func() time.Time
}

// NewTransactionService creates a new transaction service. events may
// be nil when no broker is configured.
func NewTransactionService(repo repository.TransactionRepository, events domainservice.EventPublisher, log logger.Logger) *TransactionService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}
	return &TransactionService{
		repo:   repo,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// WithClock overrides the time source used by the date-window rules.
func (s *TransactionService) WithClock(now func() time.Time) *TransactionService {
	s.now = now
	return s
}

// List returns every stored transaction in storage order (date descending).
func (s *TransactionService) List(ctx context.Context) ([]entity.Transaction, error) {
	return s.repo.FindAll(ctx)
}

// Create validates a raw request body and stores the normalized record.
func (s *TransactionService) Create(ctx context.Context, body []byte) (*entity.Transaction, error) {
	tx, err := schema.ValidateCreate(body, s.now())
	if err != nil {
		return nil, err
	}
	tx.Amount = roundToCents(tx.Amount)

	stored, err := s.repo.Store(ctx, tx)
	if err != nil {
		return nil, err
	}

	s.announce(ctx, stored.ID, eventCreated)
	return stored, nil
}

// Replace validates a raw request body as a complete record and fully
// replaces the transaction with the given identifier.
func (s *TransactionService) Replace(ctx context.Context, id string, body []byte) (*entity.Transaction, error) {
	if err := schema.ValidateID(id); err != nil {
		return nil, err
	}
	tx, err := schema.ValidateCreate(body, s.now())
	if err != nil {
		return nil, err
	}
	tx.Amount = roundToCents(tx.Amount)

	updated, err := s.repo.Update(ctx, id, tx)
	if err != nil {
		return nil, err
	}

	s.announce(ctx, id, eventUpdated)
	return updated, nil
}

// Patch applies a partial-update payload on top of the stored record.
// Each supplied field obeys the same rules a full record does and the
// stored record was valid, so the merged record is valid too.
func (s *TransactionService) Patch(ctx context.Context, id string, body []byte) (*entity.Transaction, error) {
	if err := schema.ValidateID(id); err != nil {
		return nil, err
	}
	upd, err := schema.ValidatePartial(body, s.now())
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *existing
	upd.Apply(&merged)
	merged.Amount = roundToCents(merged.Amount)

	updated, err := s.repo.Update(ctx, id, &merged)
	if err != nil {
		return nil, err
	}

	s.announce(ctx, id, eventUpdated)
	return updated, nil
}

// Delete removes the transaction with the given identifier.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := schema.ValidateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.announce(ctx, id, eventDeleted)
	return nil
}

const (
	eventCreated = "created"
	eventUpdated = "updated"
	eventDeleted = "deleted"
)

// announce publishes a change event. Publish failures are logged, never
// propagated: the write already succeeded.
func (s *TransactionService) announce(ctx context.Context, id, action string) {
	if s.events == nil {
		return
	}
	var err error
	switch action {
	case eventCreated:
		err = s.events.TransactionCreated(ctx, id)
	case eventUpdated:
		err = s.events.TransactionUpdated(ctx, id)
	case eventDeleted:
		err = s.events.TransactionDeleted(ctx, id)
	}
	if err != nil {
		s.log.Warn("Failed to publish transaction event", map[string]interface{}{
			"id":     id,
			"action": action,
			"error":  err.Error(),
		})
	}
}

// roundToCents rounds an amount to the nearest cent.
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
