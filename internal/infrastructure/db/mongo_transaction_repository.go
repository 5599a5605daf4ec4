package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/entity"
	"github.com/dharmendra-007/personal-finance-tracker/internal/domain/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// transactionDocument is the persisted shape of a transaction. The
// entity keeps a plain hex string for the identifier; only this layer
// knows it is a Mongo ObjectID.
type transactionDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Amount      float64            `bson:"amount"`
	Date        string             `bson:"date"`
	Description string             `bson:"description"`
	Type        string             `bson:"type"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *transactionDocument) toEntity() entity.Transaction {
	return entity.Transaction{
		ID:          d.ID.Hex(),
		Amount:      d.Amount,
		Date:        d.Date,
		Description: d.Description,
		Type:        entity.TransactionType(d.Type),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoTransactionRepository implements the transaction repository
// interface on a MongoDB collection.
type MongoTransactionRepository struct {
	collection *mongo.Collection
}

// NewMongoTransactionRepository creates a new MongoDB transaction repository.
func NewMongoTransactionRepository(database *mongo.Database) *MongoTransactionRepository {
	return &MongoTransactionRepository{
		collection: database.Collection(TransactionsCollection),
	}
}

// FindAll returns every transaction, date descending with createdAt as
// tiebreak.
func (r *MongoTransactionRepository) FindAll(ctx context.Context) ([]entity.Transaction, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "createdAt", Value: -1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []transactionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	txs := make([]entity.Transaction, 0, len(docs))
	for i := range docs {
		txs = append(txs, docs[i].toEntity())
	}
	return txs, nil
}

// FindByID retrieves a transaction by its unique identifier.
func (r *MongoTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc transactionDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transaction: %w", err)
	}

	tx := doc.toEntity()
	return &tx, nil
}

// Store saves a new transaction, assigning identifier and timestamps.
func (r *MongoTransactionRepository) Store(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	now := time.Now().UTC()
	doc := transactionDocument{
		ID:          primitive.NewObjectID(),
		Amount:      tx.Amount,
		Date:        tx.Date,
		Description: tx.Description,
		Type:        string(tx.Type),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to store transaction: %w", err)
	}

	stored := doc.toEntity()
	return &stored, nil
}

// Update replaces the mutable fields of an existing transaction and
// returns the record as stored after the update.
func (r *MongoTransactionRepository) Update(ctx context.Context, id string, tx *entity.Transaction) (*entity.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"amount":      tx.Amount,
		"date":        tx.Date,
		"description": tx.Description,
		"type":        string(tx.Type),
		"updatedAt":   time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc transactionDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	updated := doc.toEntity()
	return &updated, nil
}

// Delete removes a transaction by its unique identifier.
func (r *MongoTransactionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
