// Package resource es el registro único de recursos del panel: ruta de la UI,
// endpoint de la API, columnas de la tabla, orden por defecto y mensajes.
// Breadcrumbs, navegación y tablas se derivan de aquí; no hay tablas paralelas.
package resource

import "strings"

// SkeletonKind forma del placeholder que se pinta en una celda mientras carga.
type SkeletonKind string

const (
	SkeletonText    SkeletonKind = "text"
	SkeletonBadge   SkeletonKind = "badge"
	SkeletonAvatar  SkeletonKind = "avatar"
	SkeletonNumber  SkeletonKind = "number"
	SkeletonDate    SkeletonKind = "date"
	SkeletonActions SkeletonKind = "actions"
)

// Direcciones de orden aceptadas por la API.
const (
	DirectionAsc  = "asc"
	DirectionDesc = "desc"
)

// ActionsColumn clave de la columna de acciones (editar/borrar) que se añade a todas las tablas.
const ActionsColumn = "actions"

// Column definición de una columna de la tabla.
type Column struct {
	Key      string       `json:"key"`
	Label    string       `json:"label"`
	Sortable bool         `json:"sortable"`
	Skeleton SkeletonKind `json:"skeleton"`
}

// Resource entidad REST administrable.
type Resource struct {
	Key              string // "programs"; también prefijo de la clave de caché
	Label            string
	Singular         string
	Group            string // agrupación en la navegación
	Path             string // ruta de la UI, ej. /programs
	Endpoint         string // colección en la API, ej. /admin/programs
	PublicEndpoint   string // opcional
	DefaultSort      string
	DefaultDirection string
	Columns          []Column
	EmptyMessage     string
	Creatable        bool
	NewEntity        func() any
}

// ItemEndpoint endpoint de un registro concreto.
func (r Resource) ItemEndpoint(id string) string {
	return r.Endpoint + "/" + id
}

// CreatePath ruta de la UI del formulario de alta ("" si no admite altas).
func (r Resource) CreatePath() string {
	if !r.Creatable {
		return ""
	}
	return r.Path + "/create"
}

// Column busca una columna por clave.
func (r Resource) Column(key string) (Column, bool) {
	for _, c := range r.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// IsSortable indica si la API acepta ordenar por ese campo.
func (r Resource) IsSortable(field string) bool {
	if field == r.DefaultSort {
		return true
	}
	c, ok := r.Column(field)
	return ok && c.Sortable
}

// Lookup lista de opciones para selects de formularios (/lookup/{name}).
type Lookup struct {
	Name     string
	Endpoint string
	Tree     bool // categorías: se valida la jerarquía de un nivel
}

// NavItem entrada de navegación con estado activo resuelto.
type NavItem struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Href   string `json:"href"`
	Group  string `json:"group"`
	Active bool   `json:"active"`
}

// Registry registro ordenado de recursos y lookups.
type Registry struct {
	order   []string
	byKey   map[string]Resource
	lookups map[string]Lookup
}

// NewRegistry construye un registro; el orden de alta es el orden de navegación.
func NewRegistry(resources []Resource, lookups []Lookup) *Registry {
	reg := &Registry{
		byKey:   make(map[string]Resource, len(resources)),
		lookups: make(map[string]Lookup, len(lookups)),
	}
	for _, r := range resources {
		if !hasActionsColumn(r.Columns) {
			r.Columns = append(r.Columns, Column{Key: ActionsColumn, Skeleton: SkeletonActions})
		}
		if r.DefaultDirection == "" {
			r.DefaultDirection = DirectionDesc
		}
		reg.order = append(reg.order, r.Key)
		reg.byKey[r.Key] = r
	}
	for _, l := range lookups {
		reg.lookups[l.Name] = l
	}
	return reg
}

func hasActionsColumn(cols []Column) bool {
	for _, c := range cols {
		if c.Key == ActionsColumn {
			return true
		}
	}
	return false
}

// Get devuelve el recurso por clave.
func (r *Registry) Get(key string) (Resource, bool) {
	res, ok := r.byKey[key]
	return res, ok
}

// Lookup devuelve la definición de lookup por nombre.
func (r *Registry) Lookup(name string) (Lookup, bool) {
	l, ok := r.lookups[name]
	return l, ok
}

// All recursos en orden de navegación.
func (r *Registry) All() []Resource {
	out := make([]Resource, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.byKey[k])
	}
	return out
}

// Navigation marca como activa la entrada cuya ruta es prefijo (por segmentos) del path actual.
// El dashboard ("/") solo está activo en la raíz.
func (r *Registry) Navigation(path string) []NavItem {
	path = NormalizePath(path)
	items := make([]NavItem, 0, len(r.order)+1)
	items = append(items, NavItem{Key: "dashboard", Label: "Dashboard", Href: "/", Active: path == "/"})
	for _, res := range r.All() {
		items = append(items, NavItem{
			Key:    res.Key,
			Label:  res.Label,
			Href:   res.Path,
			Group:  res.Group,
			Active: path == res.Path || strings.HasPrefix(path, res.Path+"/"),
		})
	}
	return items
}

// NormalizePath quita query/fragmento y barras finales; "" => "/".
func NormalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimRight(p, "/")
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// Entity instancia vacía del tipo de entidad del recurso (para decodificar "show").
func (r Resource) Entity() any {
	if r.NewEntity == nil {
		return &map[string]any{}
	}
	return r.NewEntity()
}
