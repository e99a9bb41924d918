package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/emailbuilder/emailbuilder/internal/emailtemplate"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepo appends templates to a MongoDB collection, one document per save.
// A single InsertOne is atomic, so no transaction is needed.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Insert(ctx context.Context, t *emailtemplate.PersistedTemplate) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now().UTC()
	if _, err := m.col.InsertOne(ctx, t); err != nil {
		return "", fmt.Errorf("insert email template: %w", err)
	}
	return t.ID, nil
}
