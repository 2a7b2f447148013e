package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-admin/internal/domain/entity"
	"github.com/jhoicas/manufactura-admin/internal/domain/repository"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
	"github.com/jhoicas/manufactura-admin/pkg/logger"
)

// AuditRecorder registra las mutaciones en la bitácora. Sin repositorio solo deja el log.
type AuditRecorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewAuditRecorder construye el registrador; repo puede ser nil.
func NewAuditRecorder(repo repository.AuditRepository, log *logger.Logger) *AuditRecorder {
	if log == nil {
		log = logger.Nop()
	}
	return &AuditRecorder{repo: repo, log: log.Named("audit")}
}

type auditEvent struct {
	resource string
	action   string
	targetID string
	err      error
	forced   bool
	totals   map[string]decimal.Decimal
}

// record nunca falla hacia el llamador: un error de la bitácora no revierte la mutación.
func (a *AuditRecorder) record(ctx context.Context, sess session.Session, ev auditEvent) {
	entry := &entity.AuditEntry{
		ID:           uuid.New().String(),
		UserID:       sess.UserID,
		Role:         sess.Role,
		Resource:     ev.resource,
		TargetID:     ev.targetID,
		Action:       ev.action,
		Succeeded:    ev.err == nil,
		Forced:       ev.forced,
		RevertTotals: ev.totals,
		CreatedAt:    time.Now().UTC(),
	}
	if ev.err != nil {
		entry.Detail = ev.err.Error()
	}

	logEv := a.log.Info()
	if ev.err != nil {
		logEv = a.log.Warn().Err(ev.err)
	}
	logEv.Str("user_id", sess.UserID).
		Str("resource", ev.resource).
		Str("action", ev.action).
		Str("target_id", ev.targetID).
		Bool("forced", ev.forced).
		Msg("mutación")

	if a.repo == nil {
		return
	}
	if err := a.repo.Record(ctx, entry); err != nil {
		a.log.Error().Err(err).Str("audit_id", entry.ID).Msg("no se pudo guardar la bitácora")
	}
}

// History últimas entradas de la bitácora para un registro.
func (a *AuditRecorder) History(ctx context.Context, resource, targetID string, limit int) ([]*entity.AuditEntry, error) {
	if a.repo == nil {
		return []*entity.AuditEntry{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return a.repo.ListByResource(ctx, resource, targetID, limit)
}
