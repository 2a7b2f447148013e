package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-admin/internal/application/ports"
	"github.com/jhoicas/manufactura-admin/internal/application/resource"
	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/domain/deletepreview"
	"github.com/jhoicas/manufactura-admin/internal/domain/entity"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
	"github.com/jhoicas/manufactura-admin/internal/domain/table"
)

// DeleteUseCase borrados con confirmación. Para recursos con vista previa el
// borrado exige que el diálogo de la sesión esté abierto sobre ese registro y
// permita confirmar; la vista previa es informativa y su fallo no bloquea.
type DeleteUseCase struct {
	lists     *ListUseCase
	mutations *MutationUseCase
	gateway   ports.ResourceGateway
	store     *ViewStore
	audit     *AuditRecorder
}

// NewDeleteUseCase construye el caso de uso.
func NewDeleteUseCase(lists *ListUseCase, mutations *MutationUseCase, gateway ports.ResourceGateway, store *ViewStore, audit *AuditRecorder) *DeleteUseCase {
	return &DeleteUseCase{lists: lists, mutations: mutations, gateway: gateway, store: store, audit: audit}
}

func (uc *DeleteUseCase) dialog(sess session.Session, r *resource.Resource) *deletepreview.Dialog {
	return uc.store.Dialog(sess.ID, r.Name, func() table.ViewConfig { return r.ViewConfig(uc.lists.cfg.DefaultRowsPerPage) })
}

// OpenPreview abre el diálogo para id y consulta el impacto en el backend.
// Un diálogo anterior de la misma sesión se descarta: la vista previa nunca se reutiliza.
func (uc *DeleteUseCase) OpenPreview(ctx context.Context, sess session.Session, name, id string) (deletepreview.View, error) {
	r, err := uc.lists.Resource(sess, name)
	if err != nil {
		return deletepreview.View{}, err
	}
	if !r.Previewable {
		return deletepreview.View{}, fmt.Errorf("%w: %s no tiene vista previa de borrado", domain.ErrInvalidInput, name)
	}
	if id == "" {
		return deletepreview.View{}, &domain.ValidationError{Field: "id", Message: "es requerido"}
	}
	d := uc.dialog(sess, r)

	fetcher := deletepreview.FetcherFunc(func(ctx context.Context, id string) (*deletepreview.Preview, error) {
		return uc.gateway.DeletePreview(ctx, sess, r.Path, id)
	})
	if err := d.Reload(ctx, id, fetcher); err != nil {
		return deletepreview.View{}, err
	}
	// Si otra petición de la sesión reabrió el diálogo, View refleja esa apertura.
	v := d.View()
	if v.State == deletepreview.StateFailed && v.Target == id {
		uc.lists.log.Warn().Str("resource", name).Str("id", id).Str("error", v.Error).
			Msg("vista previa de borrado no disponible; se permite confirmar")
	}
	return v, nil
}

// PreviewState estado actual del diálogo de la sesión.
func (uc *DeleteUseCase) PreviewState(sess session.Session, name string) (deletepreview.View, error) {
	r, err := uc.lists.Resource(sess, name)
	if err != nil {
		return deletepreview.View{}, err
	}
	return uc.dialog(sess, r).View(), nil
}

// CancelPreview cierra el diálogo y descarta la vista previa.
func (uc *DeleteUseCase) CancelPreview(sess session.Session, name string) error {
	r, err := uc.lists.Resource(sess, name)
	if err != nil {
		return err
	}
	uc.dialog(sess, r).Cancel()
	return nil
}

// Delete borra el registro id.
func (uc *DeleteUseCase) Delete(ctx context.Context, sess session.Session, name, id string) error {
	r, err := uc.lists.Resource(sess, name)
	if err != nil {
		return err
	}
	if r.ReadOnly {
		return fmt.Errorf("%w: %s es de solo lectura", domain.ErrForbidden, name)
	}
	if id == "" {
		return &domain.ValidationError{Field: "id", Message: "es requerido"}
	}

	var (
		forced bool
		totals map[string]decimal.Decimal
	)
	if r.Previewable {
		v, err := uc.dialog(sess, r).Confirm(id)
		switch {
		case errors.Is(err, deletepreview.ErrNotOpen), errors.Is(err, deletepreview.ErrTargetMismatch):
			return fmt.Errorf("%w: primero consulte la vista previa de %s %s", domain.ErrDeleteBlocked, name, id)
		case errors.Is(err, deletepreview.ErrConfirmDisabled):
			return fmt.Errorf("%w: %s", domain.ErrDeleteBlocked, v.BlockedReason)
		case err != nil:
			return err
		}
		forced = v.State == deletepreview.StateFailed
		if v.Preview != nil {
			totals = v.Preview.Revert.Totals
		}
	}

	err = uc.gateway.Delete(ctx, sess, r.Path, id)
	uc.audit.record(ctx, sess, auditEvent{resource: name, action: entity.AuditDelete, targetID: id, err: err, forced: forced, totals: totals})
	if err != nil {
		return err
	}
	uc.mutations.removeFromView(sess, name, id)
	return nil
}
