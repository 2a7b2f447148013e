package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/manufactura-admin/internal/application/dto"
	"github.com/jhoicas/manufactura-admin/internal/application/ports"
	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/domain/entity"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// MutationUseCase altas, ediciones y borrados. Tras cada éxito la vista de la
// sesión se parchea (o se recarga si el backend no devolvió el registro).
type MutationUseCase struct {
	lists   *ListUseCase
	gateway ports.ResourceGateway
	store   *ViewStore
	audit   *AuditRecorder
}

// NewMutationUseCase construye el caso de uso.
func NewMutationUseCase(lists *ListUseCase, gateway ports.ResourceGateway, store *ViewStore, audit *AuditRecorder) *MutationUseCase {
	return &MutationUseCase{lists: lists, gateway: gateway, store: store, audit: audit}
}

// Get obtiene un registro directamente del backend.
func (uc *MutationUseCase) Get(ctx context.Context, sess session.Session, name, id string) (table.Row, error) {
	r, err := uc.lists.Resource(sess, name)
	if err != nil {
		return nil, err
	}
	row, err := uc.gateway.Get(ctx, sess, r.Path, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return row, nil
}

// Create valida localmente y crea el registro.
func (uc *MutationUseCase) Create(ctx context.Context, sess session.Session, name string, body map[string]any) (*dto.MutationResponse, error) {
	r, err := uc.lists.Resource(sess, name)
	if err != nil {
		return nil, err
	}
	if r.ReadOnly {
		return nil, fmt.Errorf("%w: %s es de solo lectura", domain.ErrForbidden, name)
	}
	if err := r.Validate(body); err != nil {
		return nil, err
	}
	row, err := uc.gateway.Create(ctx, sess, r.Path, body)
	uc.audit.record(ctx, sess, auditEvent{resource: name, action: entity.AuditCreate, targetID: row.ID(r.KeyField), err: err})
	if err != nil {
		return nil, err
	}
	return uc.patch(ctx, sess, name, r.KeyField, "", row), nil
}

// Update edita el registro id.
func (uc *MutationUseCase) Update(ctx context.Context, sess session.Session, name, id string, body map[string]any) (*dto.MutationResponse, error) {
	r, err := uc.lists.Resource(sess, name)
	if err != nil {
		return nil, err
	}
	if r.ReadOnly {
		return nil, fmt.Errorf("%w: %s es de solo lectura", domain.ErrForbidden, name)
	}
	if id == "" {
		return nil, &domain.ValidationError{Field: "id", Message: "es requerido"}
	}
	if len(body) == 0 {
		return nil, &domain.ValidationError{Message: "no hay campos para actualizar"}
	}
	row, err := uc.gateway.Update(ctx, sess, r.Path, id, body)
	uc.audit.record(ctx, sess, auditEvent{resource: name, action: entity.AuditUpdate, targetID: id, err: err})
	if err != nil {
		return nil, err
	}
	return uc.patch(ctx, sess, name, r.KeyField, id, row), nil
}

// patch aplica el registro devuelto sobre la vista; si no hay registro (o no trae id) se recarga.
func (uc *MutationUseCase) patch(ctx context.Context, sess session.Session, name, keyField, id string, row table.Row) *dto.MutationResponse {
	out := &dto.MutationResponse{Resource: name, ID: id, Row: row}
	view, ok := uc.store.Peek(sess.ID, name)
	if row != nil && row.ID(keyField) != "" {
		out.ID = row.ID(keyField)
		if ok {
			view.Upsert(row)
		}
		return out
	}
	out.Refetch = true
	if ok {
		r, err := uc.lists.Resource(sess, name)
		if err == nil {
			if err := uc.lists.Load(ctx, sess, r, view); err != nil {
				uc.lists.log.Warn().Err(err).Str("resource", name).Msg("recarga tras mutación fallida")
			}
		}
	}
	return out
}

// removeFromView quita el registro borrado de la vista de la sesión.
func (uc *MutationUseCase) removeFromView(sess session.Session, name, id string) {
	if view, ok := uc.store.Peek(sess.ID, name); ok {
		view.Remove(id)
	}
}
