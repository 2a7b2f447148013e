package repository

import (
	"context"

	"github.com/jhoicas/manufactura-admin/internal/domain/entity"
)

// AuditRepository define el puerto de persistencia de la bitácora (DIP).
type AuditRepository interface {
	Record(ctx context.Context, entry *entity.AuditEntry) error
	ListByResource(ctx context.Context, resource, targetID string, limit int) ([]*entity.AuditEntry, error)
}
