package resource

import "github.com/jhoicas/manufactura-admin/internal/domain/table"

func col(header, accessor string) table.Column {
	return table.Column{Header: header, Accessor: accessor, Sortable: true}
}

func cellCol(header, accessor string, cell table.CellFunc) table.Column {
	return table.Column{Header: header, Accessor: accessor, Cell: cell, Sortable: true}
}

func numCol(header, accessor string, cell table.CellFunc) table.Column {
	return table.Column{Header: header, Accessor: accessor, Cell: cell, Sortable: true, Numeric: true, Class: "num"}
}

func fields(f ...string) table.Matcher {
	return table.Matcher{Mode: table.SearchFields, Fields: f}
}

var estadoOrden = table.Filter{
	Field:   "estado",
	Label:   "Estado",
	Options: []string{"borrador", "abierta", "en_proceso", "cerrada", "cancelada"},
}

// bultosDetail sub-tabla de bultos de un lote.
func bultosDetail(r table.Row) *table.Detail {
	items, ok := r.Lookup("bultos").([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	rows := make([]table.Row, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			rows = append(rows, table.Row(m))
		}
	}
	return &table.Detail{
		Title: "Bultos",
		Columns: []table.Column{
			col("Código", "codigo"),
			numCol("Cantidad", "cantidad", Quantity),
			cellCol("Bodega", "bodega", NestedName),
		},
		Rows: rows,
	}
}

// Default catálogo con todas las entidades del panel.
func Default() *Registry {
	reg := NewRegistry()
	for _, r := range defaults() {
		if err := reg.Register(r); err != nil {
			panic(err)
		}
	}
	return reg
}

func defaults() []*Resource {
	return []*Resource{
		{
			Name: "bodegas", Title: "Bodegas", Path: "/bodegas", Envelope: "bodegas",
			Columns: []table.Column{col("Nombre", "nombre"), col("Ubicación", "ubicacion"), col("Tipo", "tipo")},
			Search:  fields("nombre", "ubicacion"),
			Filters: []table.Filter{{Field: "tipo", Label: "Tipo"}},
			Required: []string{"nombre"},
		},
		{
			Name: "clientes", Title: "Clientes", Path: "/clientes", Envelope: "clientes",
			Columns: []table.Column{col("Nombre", "nombre"), col("RUT / NIT", "rut"), col("Contacto", "contacto"), col("Correo", "email")},
			Search:  fields("nombre", "rut", "email"),
			Required: []string{"nombre"},
		},
		{
			Name: "proveedores", Title: "Proveedores", Path: "/proveedores", Envelope: "proveedores",
			Columns: []table.Column{col("Nombre", "nombre"), col("RUT / NIT", "rut"), col("Contacto", "contacto"), col("Teléfono", "telefono")},
			Search:  fields("nombre", "rut"),
			Required: []string{"nombre"},
		},
		{
			Name: "insumos", Title: "Insumos", Path: "/insumos", Envelope: "insumos",
			Columns: []table.Column{
				col("Código", "codigo"), col("Nombre", "nombre"), col("Unidad", "unidad_medida"),
				numCol("Stock", "stock_actual", Quantity), numCol("Stock crítico", "stock_critico", Quantity),
				cellCol("Categoría", "categoria", NestedName),
			},
			Search:   table.Matcher{Mode: table.SearchFuzzy, Fields: []string{"nombre", "codigo"}},
			Filters:  []table.Filter{{Field: "unidad_medida", Label: "Unidad"}},
			Required: []string{"nombre", "unidad_medida"},
		},
		{
			Name: "pips", Title: "Productos en proceso", Path: "/pips", Envelope: "pips",
			Columns: []table.Column{col("Código", "codigo"), col("Nombre", "nombre"), col("Unidad", "unidad_medida"), numCol("Stock", "stock_actual", Quantity)},
			Search:   fields("nombre", "codigo"),
			Required: []string{"nombre"},
		},
		{
			Name: "lotes", Title: "Lotes", Path: "/lotes", Envelope: "lotes", KeyField: "id_lote",
			Columns: []table.Column{
				col("Lote", "codigo"), col("Tipo", "tipo"), cellCol("Producto", "producto", NestedName),
				numCol("Cantidad", "cantidad", Quantity), cellCol("Vencimiento", "fecha_vencimiento", Date),
				cellCol("Bultos", "bultos", Count),
			},
			Search:  table.Matcher{Mode: table.SearchRecord},
			Filters: []table.Filter{{Field: "tipo", Label: "Tipo", Options: []string{"insumo", "PIP", "producto"}}},
			Expand:  bultosDetail,
		},
		{
			Name: "bultos", Title: "Bultos", Path: "/bultos", Envelope: "bultos",
			Columns: []table.Column{
				col("Código", "codigo"), cellCol("Insumo", "insumo", NestedName), numCol("Cantidad", "cantidad_actual", Quantity),
				cellCol("Bodega", "bodega", NestedName), col("Lote", "lote"),
			},
			Search:  fields("codigo", "insumo.nombre", "lote"),
			Filters: []table.Filter{{Field: "bodega.nombre", Label: "Bodega"}},
			ReadOnly: true,
		},
		{
			Name: "ordenes-manufactura", Title: "Órdenes de manufactura", Path: "/ordenes-manufactura", Envelope: "ordenes",
			Columns: []table.Column{
				numCol("N°", "id", nil), cellCol("Producto", "producto", NestedName), numCol("Cantidad", "cantidad", Quantity),
				col("Estado", "estado"), cellCol("Inicio", "fecha_inicio", Date), cellCol("Operarios", "operarios", Names),
			},
			Search:      fields("id", "producto.nombre", "estado"),
			Filters:     []table.Filter{estadoOrden},
			Required:    []string{"producto_id", "cantidad"},
			Previewable: true,
		},
		{
			Name: "ordenes-compra", Title: "Órdenes de compra", Path: "/ordenes-compra", Envelope: "ordenes",
			Columns: []table.Column{
				numCol("N°", "id", nil), cellCol("Proveedor", "proveedor", NestedName), cellCol("Fecha", "fecha", Date),
				col("Estado", "estado"), numCol("Total", "total", Money),
			},
			Search:   fields("id", "proveedor.nombre"),
			Filters:  []table.Filter{estadoOrden},
			Required: []string{"proveedor_id"},
		},
		{
			Name: "ordenes-venta", Title: "Órdenes de venta", Path: "/ordenes-venta", Envelope: "ordenes",
			Columns: []table.Column{
				numCol("N°", "id", nil), cellCol("Cliente", "cliente", NestedName), cellCol("Fecha", "fecha", Date),
				col("Estado", "estado"), numCol("Total", "total", Money),
			},
			Search:   fields("id", "cliente.nombre"),
			Filters:  []table.Filter{estadoOrden},
			Required: []string{"cliente_id"},
		},
		{
			Name: "facturas", Title: "Facturas", Path: "/facturas", Envelope: "facturas",
			Columns: []table.Column{
				col("Número", "numero"), cellCol("Proveedor", "proveedor", NestedName), cellCol("Fecha", "fecha", Date),
				numCol("Neto", "neto", Money), numCol("IVA", "iva", Money), numCol("Total", "total", Money), col("Estado", "estado_pago"),
			},
			Search:   fields("numero", "proveedor.nombre"),
			Filters:  []table.Filter{{Field: "estado_pago", Label: "Pago", Options: []string{"pendiente", "pagada", "vencida"}}},
			Required: []string{"numero", "proveedor_id"},
		},
		{
			Name: "procesos-pva", Title: "Procesos de valor agregado", Path: "/procesos-pva", Envelope: "procesos",
			Columns: []table.Column{col("Nombre", "nombre"), col("Descripción", "descripcion"), numCol("Costo", "costo", Money)},
			Search:   fields("nombre", "descripcion"),
			Required: []string{"nombre"},
		},
		{
			Name: "roles", Title: "Roles", Path: "/roles", Envelope: "roles",
			Columns:   []table.Column{col("Nombre", "nombre"), cellCol("Permisos", "permisos", Count)},
			Search:    fields("nombre"),
			Required:  []string{"nombre"},
			AdminOnly: true,
		},
		{
			Name: "usuarios", Title: "Usuarios", Path: "/usuarios", Envelope: "usuarios",
			Columns: []table.Column{col("Usuario", "username"), col("Nombre", "nombre"), cellCol("Rol", "rol", NestedName), col("Activo", "activo")},
			Search:    fields("username", "nombre", "email"),
			Filters:   []table.Filter{{Field: "activo", Label: "Activo", Options: []string{"Sí", "No"}}},
			Required:  []string{"username", "rol_id"},
			AdminOnly: true,
		},
	}
}
