// Package deletepreview modela la confirmación de borrado con vista previa
// calculada por el backend. La vista previa es solo informativa: si su consulta
// falla, la confirmación sigue habilitada.
package deletepreview

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// State estado del diálogo.
type State string

const (
	StateClosed  State = "closed"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

var (
	// ErrNotClosed el diálogo ya tiene un objetivo abierto.
	ErrNotClosed = errors.New("deletepreview: el diálogo ya está abierto")
	// ErrNotOpen no hay objetivo abierto.
	ErrNotOpen = errors.New("deletepreview: el diálogo no está abierto")
	// ErrTargetMismatch la respuesta no corresponde al objetivo abierto.
	ErrTargetMismatch = errors.New("deletepreview: objetivo distinto al abierto")
	// ErrConfirmDisabled la confirmación no está permitida en el estado actual.
	ErrConfirmDisabled = errors.New("deletepreview: confirmación deshabilitada")
	// ErrStale la respuesta pertenece a una apertura ya reemplazada o cerrada.
	ErrStale = errors.New("deletepreview: respuesta de una apertura anterior")
)

// Bulto contenedor físico afectado por la reversión.
type Bulto struct {
	ID       string          `json:"id"`
	Codigo   string          `json:"codigo,omitempty"`
	Insumo   string          `json:"insumo,omitempty"`
	Cantidad decimal.Decimal `json:"cantidad"`
	Unidad   string          `json:"unidad,omitempty"`
}

// Revert efectos de revertir las entradas del registro.
type Revert struct {
	Bultos []Bulto                     `json:"bultos"`
	Totals map[string]decimal.Decimal `json:"totals"`
}

// Preview resumen de impacto devuelto por el backend.
type Preview struct {
	CanDelete     bool           `json:"can_delete"`
	BlockedReason string         `json:"blocked_reason,omitempty"`
	Outputs       map[string]int `json:"outputs"`
	Revert        Revert         `json:"revert"`
}

// OutputKeys claves de Outputs ordenadas, para pintar el resumen de forma estable.
func (p Preview) OutputKeys() []string {
	keys := make([]string, 0, len(p.Outputs))
	for k := range p.Outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TotalKeys claves de Revert.Totals ordenadas.
func (p Preview) TotalKeys() []string {
	keys := make([]string, 0, len(p.Revert.Totals))
	for k := range p.Revert.Totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fetcher consulta la vista previa de borrado de un registro.
type Fetcher interface {
	FetchDeletePreview(ctx context.Context, id string) (*Preview, error)
}

// FetcherFunc adapta una función a Fetcher.
type FetcherFunc func(ctx context.Context, id string) (*Preview, error)

// FetchDeletePreview implementa Fetcher.
func (f FetcherFunc) FetchDeletePreview(ctx context.Context, id string) (*Preview, error) {
	return f(ctx, id)
}

// Dialog máquina de estados de la confirmación:
// closed -> loading -> ready | failed -> closed.
// Cada apertura incrementa la generación; las respuestas de una generación
// anterior se descartan.
type Dialog struct {
	mu         sync.Mutex
	state      State
	target     string
	preview    *Preview
	err        error
	generation uint64
}

// Ticket identifica una apertura concreta del diálogo.
type Ticket struct {
	ID         string
	Generation uint64
}

// NewDialog crea un diálogo cerrado.
func NewDialog() *Dialog {
	return &Dialog{state: StateClosed}
}

// Open fija el objetivo y pasa a loading. El objetivo no cambia hasta cerrar.
func (d *Dialog) Open(id string) (Ticket, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateClosed {
		return Ticket{}, ErrNotClosed
	}
	return d.openLocked(id), nil
}

// Reopen descarta lo que hubiera abierto y abre para id.
func (d *Dialog) Reopen(id string) Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeLocked()
	return d.openLocked(id)
}

func (d *Dialog) openLocked(id string) Ticket {
	d.generation++
	d.state = StateLoading
	d.target = id
	d.preview = nil
	d.err = nil
	return Ticket{ID: id, Generation: d.generation}
}

func (d *Dialog) checkLocked(t Ticket) error {
	if t.Generation != d.generation {
		return ErrStale
	}
	if d.state != StateLoading {
		return ErrNotOpen
	}
	return nil
}

// Resolve registra la vista previa recibida para la apertura t.
func (d *Dialog) Resolve(t Ticket, p *Preview) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkLocked(t); err != nil {
		return err
	}
	if p == nil {
		p = &Preview{CanDelete: true}
	}
	d.preview = p
	d.state = StateReady
	return nil
}

// Fail registra el fallo de la consulta. No bloquea el borrado.
func (d *Dialog) Fail(t Ticket, err error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkLocked(t); err != nil {
		return err
	}
	d.err = err
	d.state = StateFailed
	return nil
}

// Load abre el diálogo y consulta la vista previa con fetcher.
func (d *Dialog) Load(ctx context.Context, id string, fetcher Fetcher) error {
	t, err := d.Open(id)
	if err != nil {
		return err
	}
	return d.fetch(ctx, t, fetcher)
}

// Reload como Load pero reemplaza cualquier apertura previa. Si mientras
// tanto otra apertura tomó el diálogo, la respuesta se descarta sin error.
func (d *Dialog) Reload(ctx context.Context, id string, fetcher Fetcher) error {
	return d.fetch(ctx, d.Reopen(id), fetcher)
}

func (d *Dialog) fetch(ctx context.Context, t Ticket, fetcher Fetcher) error {
	p, err := fetcher.FetchDeletePreview(ctx, t.ID)
	if err != nil {
		err = d.Fail(t, err)
	} else {
		err = d.Resolve(t, p)
	}
	if errors.Is(err, ErrStale) {
		return nil
	}
	return err
}

// CanConfirm indica si el botón de confirmar está habilitado: nunca mientras
// carga; deshabilitado solo si el backend respondió can_delete=false;
// habilitado si la consulta falló.
func (d *Dialog) CanConfirm() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canConfirmLocked()
}

func (d *Dialog) canConfirmLocked() bool {
	switch d.state {
	case StateFailed:
		return true
	case StateReady:
		return d.preview != nil && d.preview.CanDelete
	}
	return false
}

// Confirm cierra el diálogo si está abierto sobre id y permite confirmar.
// Devuelve el estado previo al cierre.
func (d *Dialog) Confirm(id string) (View, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateClosed {
		return View{}, ErrNotOpen
	}
	if d.target != id {
		return View{}, ErrTargetMismatch
	}
	v := d.viewLocked()
	if !v.CanConfirm {
		if v.BlockedReason != "" {
			return v, fmt.Errorf("%w: %s", ErrConfirmDisabled, v.BlockedReason)
		}
		return v, ErrConfirmDisabled
	}
	d.closeLocked()
	return v, nil
}

// Cancel cierra el diálogo y descarta la vista previa.
func (d *Dialog) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closeLocked()
}

func (d *Dialog) closeLocked() {
	if d.state != StateClosed {
		d.generation++
	}
	d.state = StateClosed
	d.target = ""
	d.preview = nil
	d.err = nil
}

// View estado observable del diálogo.
type View struct {
	State         State    `json:"state"`
	Target        string   `json:"target"`
	CanConfirm    bool     `json:"can_confirm"`
	BlockedReason string   `json:"blocked_reason,omitempty"`
	Error         string   `json:"error,omitempty"`
	Preview       *Preview `json:"preview,omitempty"`
}

// View devuelve una copia del estado actual.
func (d *Dialog) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewLocked()
}

func (d *Dialog) viewLocked() View {
	v := View{State: d.state, Target: d.target, CanConfirm: d.canConfirmLocked(), Preview: d.preview}
	if d.preview != nil && !d.preview.CanDelete {
		v.BlockedReason = d.preview.BlockedReason
	}
	if d.err != nil {
		v.Error = d.err.Error()
	}
	return v
}
