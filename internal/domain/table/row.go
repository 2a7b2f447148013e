package table

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Row es un registro arbitrario devuelto por el backend (bodega, cliente, insumo, lote...).
// No hay esquema compartido: el renderer es estructuralmente genérico.
type Row map[string]any

// DefaultKeyFields campos candidatos de identidad, en orden de prioridad.
var DefaultKeyFields = []string{"lote", "id", "id_lote"}

// DefaultDiscriminator campo secundario que distingue filas con el mismo id en sub-tipos distintos.
const DefaultDiscriminator = "tipo"

// Lookup resuelve un accessor con notación de puntos ("proveedor.nombre").
// Devuelve nil si algún tramo del camino no existe.
func (r Row) Lookup(path string) any {
	if r == nil || path == "" {
		return nil
	}
	var cur any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[part]
			if !ok {
				return nil
			}
			cur = v
		case Row:
			v, ok := m[part]
			if !ok {
				return nil
			}
			cur = v
		default:
			return nil
		}
	}
	return cur
}

// ID devuelve el identificador de la fila usando keyField, o los candidatos por defecto si keyField está vacío.
func (r Row) ID(keyField string) string {
	if keyField != "" {
		return Format(r.Lookup(keyField))
	}
	for _, f := range DefaultKeyFields {
		if s := Format(r.Lookup(f)); s != "" {
			return s
		}
	}
	return ""
}

// RowKey calcula la clave estable de una fila: primer campo de identidad no vacío
// (lote, id, id_lote; si no, el índice) concatenado con el discriminador.
func RowKey(r Row, index int, discriminator string) string {
	key := r.ID("")
	if key == "" {
		key = strconv.Itoa(index)
	}
	if discriminator == "" {
		return key
	}
	if d := Format(r.Lookup(discriminator)); d != "" {
		return key + ":" + d
	}
	return key
}

// IsScalar indica si el valor se puede mostrar sin función de celda.
func IsScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, json.Number, decimal.Decimal,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// Format convierte un valor escalar a texto. Mapas y slices devuelven "":
// las columnas no escalares deben declarar su propia función de celda.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case decimal.Decimal:
		return x.String()
	case bool:
		if x {
			return "Sí"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x)
	}
	return ""
}

// Stringify serializa el registro completo; se usa para la búsqueda "todo el registro".
func Stringify(r Row) string {
	b, err := json.Marshal(r)
	if err != nil {
		return ""
	}
	return string(b)
}
