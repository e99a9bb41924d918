package repository

import (
	"context"

	"github.com/emailbuilder/emailbuilder/internal/emailtemplate"
)

// Repository appends persisted templates. There is deliberately no read path:
// saved records are never read back by the service.
type Repository interface {
	Insert(ctx context.Context, t *emailtemplate.PersistedTemplate) (string, error)
}
