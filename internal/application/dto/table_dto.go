package dto

import (
	"github.com/jhoicas/wellness-admin/internal/domain/breadcrumb"
	"github.com/jhoicas/wellness-admin/internal/domain/resource"
)

// TableState estado visual de una tabla de recurso.
type TableState string

const (
	TableLoading TableState = "loading"
	TableReady   TableState = "ready"
	TableEmpty   TableState = "empty"
	TableError   TableState = "error"
)

// TableQuery parámetros vigentes de la tabla (página, tamaño, orden y búsqueda).
type TableQuery struct {
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page"`
	Sort      string `json:"sort"`
	Direction string `json:"direction"`
	Search    string `json:"search,omitempty"`
}

// SkeletonCell placeholder de una celda mientras la página carga.
type SkeletonCell struct {
	Column string                `json:"column"`
	Kind   resource.SkeletonKind `json:"kind"`
}

// TableRow fila renderizable: celdas por clave de columna y permisos de la fila.
type TableRow struct {
	ID        string         `json:"id"`
	Cells     map[string]any `json:"cells"`
	Editable  bool           `json:"editable"`
	Deletable bool           `json:"deletable"`
}

// TableView tabla lista para pintar en cualquiera de sus cuatro estados.
type TableView struct {
	State        TableState        `json:"state"`
	Columns      []resource.Column `json:"columns"`
	Rows         []TableRow        `json:"rows"`
	Skeleton     [][]SkeletonCell  `json:"skeleton,omitempty"`
	Pagination   Pagination        `json:"pagination"`
	Query        TableQuery        `json:"query"`
	EmptyMessage string            `json:"empty_message,omitempty"`
	Error        *ErrorResponse    `json:"error,omitempty"`
}

// ListPage página de listado: cabecera, acción de alta, breadcrumbs y tabla.
type ListPage struct {
	Resource    string             `json:"resource"`
	Title       string             `json:"title"`
	CreateHref  string             `json:"create_href,omitempty"`
	Breadcrumbs []breadcrumb.Entry `json:"breadcrumbs"`
	Table       TableView          `json:"table"`
}
