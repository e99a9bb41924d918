package repository

import (
	"context"
	"sync"
	"time"

	"github.com/emailbuilder/emailbuilder/internal/emailtemplate"
	"github.com/google/uuid"
)

// MemoryRepo keeps templates in process memory. Used by tests and when the
// service runs without a database in local development.
type MemoryRepo struct {
	mu    sync.RWMutex
	items []*emailtemplate.PersistedTemplate
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Insert(ctx context.Context, t *emailtemplate.PersistedTemplate) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now().UTC()
	cp := *t
	m.items = append(m.items, &cp)
	return t.ID, nil
}

// All returns a snapshot of the inserted templates in insertion order.
func (m *MemoryRepo) All() []emailtemplate.PersistedTemplate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]emailtemplate.PersistedTemplate, 0, len(m.items))
	for _, t := range m.items {
		out = append(out, *t)
	}
	return out
}
