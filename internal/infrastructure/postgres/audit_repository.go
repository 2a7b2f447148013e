package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/domain/entity"
	"github.com/jhoicas/manufactura-admin/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// Schema tablas de la bitácora. Se aplica al arrancar con EnsureSchema.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id         UUID PRIMARY KEY,
	user_id    TEXT NOT NULL,
	role       TEXT NOT NULL,
	resource   TEXT NOT NULL,
	target_id  TEXT NOT NULL,
	action     TEXT NOT NULL,
	succeeded  BOOLEAN NOT NULL,
	forced     BOOLEAN NOT NULL DEFAULT FALSE,
	detail     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS audit_log_target_idx ON audit_log (resource, target_id, created_at DESC);
CREATE TABLE IF NOT EXISTS audit_log_totals (
	audit_id UUID NOT NULL REFERENCES audit_log (id) ON DELETE CASCADE,
	unit     TEXT NOT NULL,
	total    NUMERIC(18,4) NOT NULL,
	PRIMARY KEY (audit_id, unit)
);`

// AuditRepo implementación del puerto AuditRepository sobre PostgreSQL.
type AuditRepo struct {
	pool *pgxpool.Pool
}

// NewAuditRepository construye el adaptador de persistencia de la bitácora.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// EnsureSchema crea las tablas si no existen.
func (r *AuditRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("audit schema: %w", err)
	}
	return nil
}

// Record persiste la entrada y sus totales de reversión en una sola transacción.
func (r *AuditRepo) Record(ctx context.Context, e *entity.AuditEntry) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO audit_log (id, user_id, role, resource, target_id, action, succeeded, forced, detail, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			e.ID, e.UserID, e.Role, e.Resource, e.TargetID, e.Action, e.Succeeded, e.Forced, e.Detail, e.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: entrada de bitácora %s duplicada", domain.ErrConflict, e.ID)
			}
			return fmt.Errorf("insert audit_log: %w", err)
		}
		if len(e.RevertTotals) == 0 {
			return nil
		}
		units := make([]string, 0, len(e.RevertTotals))
		for u := range e.RevertTotals {
			units = append(units, u)
		}
		sort.Strings(units)
		batch := &pgx.Batch{}
		for _, u := range units {
			batch.Queue(`INSERT INTO audit_log_totals (audit_id, unit, total) VALUES ($1, $2, $3)`, e.ID, u, e.RevertTotals[u])
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert audit_log_totals: %w", err)
		}
		return nil
	})
}

// ListByResource últimas entradas de un recurso; targetID vacío devuelve todo el recurso.
func (r *AuditRepo) ListByResource(ctx context.Context, resource, targetID string, limit int) ([]*entity.AuditEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, user_id, role, resource, target_id, action, succeeded, forced, detail, created_at
		FROM audit_log
		WHERE resource = $1 AND ($2 = '' OR target_id = $2)
		ORDER BY created_at DESC
		LIMIT $3`, resource, targetID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit_log: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.AuditEntry, 0)
	byID := make(map[string]*entity.AuditEntry)
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Role, &e.Resource, &e.TargetID, &e.Action,
			&e.Succeeded, &e.Forced, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit_log: %w", err)
		}
		out = append(out, &e)
		byID[e.ID] = &e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit_log: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(out))
	for _, e := range out {
		ids = append(ids, e.ID)
	}
	trows, err := r.pool.Query(ctx, `
		SELECT audit_id::text, unit, total FROM audit_log_totals WHERE audit_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("list audit_log_totals: %w", err)
	}
	defer trows.Close()
	for trows.Next() {
		var (
			id, unit string
			total    decimal.Decimal
		)
		if err := trows.Scan(&id, &unit, &total); err != nil {
			return nil, fmt.Errorf("scan audit_log_totals: %w", err)
		}
		if e, ok := byID[id]; ok {
			if e.RevertTotals == nil {
				e.RevertTotals = make(map[string]decimal.Decimal)
			}
			e.RevertTotals[unit] = total
		}
	}
	return out, trows.Err()
}
