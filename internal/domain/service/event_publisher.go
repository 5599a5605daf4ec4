package service

import "context"

// EventPublisher defines the interface for broadcasting transaction
// change events to interested consumers. Publishing is best-effort:
// callers log failures but never surface them to the client.
type EventPublisher interface {
	// TransactionCreated announces a newly stored transaction.
	TransactionCreated(ctx context.Context, id string) error

	// TransactionUpdated announces a replaced or partially updated transaction.
	TransactionUpdated(ctx context.Context, id string) error

	// TransactionDeleted announces a removed transaction.
	TransactionDeleted(ctx context.Context, id string) error
}
