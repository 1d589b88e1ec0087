package table

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
	"github.com/jhoicas/wellness-admin/internal/domain/resource"
)

// Valores por defecto de paginación.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Query parámetros de la tabla. Cada campo se cambia de forma independiente.
type Query struct {
	Page      int
	PerPage   int
	Sort      string
	Direction string
	Search    string
}

// NewQuery query inicial: página 1, 10 por página y el orden por defecto del recurso.
func NewQuery(sort, direction string) Query {
	return Query{
		Page:      DefaultPage,
		PerPage:   DefaultPerPage,
		Sort:      sort,
		Direction: normalizeDirection(direction, resource.DirectionDesc),
	}
}

// Values parámetros GET: page, per_page, sort, direction y search solo si no está vacío.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("per_page", strconv.Itoa(q.PerPage))
	if q.Sort != "" {
		v.Set("sort", q.Sort)
		v.Set("direction", q.Direction)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// DTO vista serializable de la query.
func (q Query) DTO() dto.TableQuery {
	return dto.TableQuery{
		Page:      q.Page,
		PerPage:   q.PerPage,
		Sort:      q.Sort,
		Direction: q.Direction,
		Search:    q.Search,
	}
}

func clampPage(n int) int {
	if n < 1 {
		return DefaultPage
	}
	return n
}

func clampPerPage(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxPerPage:
		return MaxPerPage
	}
	return n
}

func normalizeDirection(d, fallback string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case resource.DirectionAsc:
		return resource.DirectionAsc
	case resource.DirectionDesc:
		return resource.DirectionDesc
	}
	return fallback
}

// With devuelve la query con los parámetros presentes en params (page, per_page,
// sort, direction, search) aplicados; los ausentes conservan su valor.
func (q Query) With(params url.Values, sortable func(string) bool) Query {
	if v := params.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Page = clampPage(n)
		}
	}
	if v := params.Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.PerPage = clampPerPage(n)
		}
	}
	if params.Has("sort") || params.Has("direction") {
		q = q.withSort(params.Get("sort"), params.Get("direction"), sortable)
	}
	if params.Has("search") {
		q.Search = strings.TrimSpace(params.Get("search"))
	}
	return q
}

func (q Query) withSort(field, direction string, sortable func(string) bool) Query {
	field = strings.TrimSpace(field)
	if field != "" && (sortable == nil || sortable(field)) {
		q.Sort = field
	}
	q.Direction = normalizeDirection(direction, q.Direction)
	return q
}
