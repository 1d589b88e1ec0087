// Package table es el hook de datos de las tablas de recurso: mantiene página,
// tamaño, orden y búsqueda, y vuelve a pedir la página cada vez que uno cambia.
package table

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
)

// Loader trae una página del endpoint. cacheKey identifica la tabla; el loader
// añade los parámetros para formar la clave completa.
type Loader interface {
	LoadPage(ctx context.Context, endpoint, cacheKey string, params url.Values) (*dto.Envelope, error)
}

// Result página vigente.
type Result struct {
	Records    []json.RawMessage
	Pagination dto.Pagination
	Err        error
}

// State ready, empty o error según el resultado.
func (r Result) State() dto.TableState {
	switch {
	case r.Err != nil:
		return dto.TableError
	case len(r.Records) == 0:
		return dto.TableEmpty
	}
	return dto.TableReady
}

// Option configura la tabla.
type Option func(*Table)

// WithSortable restringe los campos de orden aceptados; un campo no ordenable se ignora.
func WithSortable(fn func(field string) bool) Option {
	return func(t *Table) { t.sortable = fn }
}

// Table estado de una tabla de recurso. No es segura para uso concurrente:
// cada petición HTTP construye la suya.
type Table struct {
	endpoint string
	cacheKey string
	loader   Loader
	sortable func(string) bool
	query    Query
	result   Result
}

// New tabla sobre endpoint con el orden por defecto indicado.
func New(endpoint, cacheKey, defaultSort, defaultDirection string, loader Loader, opts ...Option) *Table {
	t := &Table{
		endpoint: endpoint,
		cacheKey: cacheKey,
		loader:   loader,
		query:    NewQuery(defaultSort, defaultDirection),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Query parámetros vigentes.
func (t *Table) Query() Query { return t.query }

// Result última página obtenida.
func (t *Table) Result() Result { return t.result }

// Fetch pide la página con los parámetros vigentes.
func (t *Table) Fetch(ctx context.Context) Result {
	env, err := t.loader.LoadPage(ctx, t.endpoint, t.cacheKey, t.query.Values())
	if err != nil {
		t.result = Result{Err: err}
		return t.result
	}
	var records []json.RawMessage
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &records); err != nil {
			t.result = Result{Err: fmt.Errorf("table: data no es una lista: %w", err)}
			return t.result
		}
	}
	// La API nunca debería devolver más de per_page, pero la tabla no lo asume.
	if len(records) > t.query.PerPage {
		records = records[:t.query.PerPage]
	}
	t.result = Result{
		Records:    records,
		Pagination: t.pagination(env, len(records)),
	}
	return t.result
}

// pagination completa los metadatos ausentes a partir de la query y el nº de registros.
func (t *Table) pagination(env *dto.Envelope, count int) dto.Pagination {
	p := dto.Pagination{CurrentPage: t.query.Page, PerPage: t.query.PerPage, Total: count}
	if env.Meta != nil && env.Meta.Pagination != nil {
		p = *env.Meta.Pagination
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = t.query.Page
	}
	if p.PerPage < 1 {
		p.PerPage = t.query.PerPage
	}
	if p.Total < 0 {
		p.Total = 0
	}
	if last := (p.Total + p.PerPage - 1) / p.PerPage; p.LastPage < last {
		p.LastPage = last
	}
	if p.LastPage < 1 {
		p.LastPage = 1
	}
	return p
}

// SetPage cambia de página y vuelve a pedir.
func (t *Table) SetPage(ctx context.Context, page int) Result {
	t.query.Page = clampPage(page)
	return t.Fetch(ctx)
}

// SetPageSize cambia el tamaño de página (1..100) y vuelve a pedir.
func (t *Table) SetPageSize(ctx context.Context, size int) Result {
	t.query.PerPage = clampPerPage(size)
	return t.Fetch(ctx)
}

// SetSort cambia campo y dirección de orden. Un campo no ordenable o una dirección
// desconocida conservan el valor vigente.
func (t *Table) SetSort(ctx context.Context, field, direction string) Result {
	t.query = t.query.withSort(field, direction, t.sortable)
	return t.Fetch(ctx)
}

// SetSearch cambia el término de búsqueda y vuelve a pedir.
func (t *Table) SetSearch(ctx context.Context, term string) Result {
	t.query.Search = strings.TrimSpace(term)
	return t.Fetch(ctx)
}

// Apply aplica los parámetros presentes en params sin tocar los ausentes y hace
// una única petición.
func (t *Table) Apply(ctx context.Context, params url.Values) Result {
	t.query = t.query.With(params, t.sortable)
	return t.Fetch(ctx)
}
