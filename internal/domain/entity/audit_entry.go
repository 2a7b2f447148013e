package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Acciones registradas en la bitácora.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

// AuditEntry registro de una mutación hecha desde el panel.
type AuditEntry struct {
	ID        string
	UserID    string
	Role      string
	Resource  string
	TargetID  string
	Action    string
	Succeeded bool
	Detail    string
	// Forced indica un borrado confirmado aunque la vista previa falló.
	Forced bool
	// RevertTotals cantidades revertidas según la vista previa (solo borrados).
	RevertTotals map[string]decimal.Decimal
	CreatedAt    time.Time
}
