// Package breadcrumb resuelve el rastro de navegación de una ruta de la UI.
// Es una función pura sobre un mapa estático derivado del registro de recursos.
package breadcrumb

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/wellness-admin/internal/domain/resource"
)

// Entry elemento del rastro. El último nunca lleva href.
type Entry struct {
	Label string `json:"label"`
	Href  string `json:"href,omitempty"`
}

type template struct {
	segments []string // ":id" marca un parámetro
	trail    []Entry
}

// Resolver mapa ruta -> rastro con entradas exactas y plantillas (:id).
type Resolver struct {
	exact     map[string][]Entry
	templates []template
}

var home = Entry{Label: "Dashboard", Href: "/"}

// NewResolver construye el mapa a partir del registro de recursos más las páginas estáticas.
func NewResolver(reg *resource.Registry) *Resolver {
	r := &Resolver{exact: map[string][]Entry{
		"/":         {{Label: "Dashboard"}},
		"/profile":  {home, {Label: "Profile"}},
		"/settings": {home, {Label: "Settings"}},
	}}
	for _, res := range reg.All() {
		list := Entry{Label: res.Label, Href: res.Path}
		r.exact[res.Path] = []Entry{home, {Label: res.Label}}
		if res.Creatable {
			r.exact[res.CreatePath()] = []Entry{home, list, {Label: "Create " + res.Singular}}
		}
		r.add(res.Path+"/:id", home, list, Entry{Label: res.Singular + " Details"})
		r.add(res.Path+"/:id/edit", home, list, Entry{Label: res.Singular + " Details", Href: res.Path + "/:id"}, Entry{Label: "Edit " + res.Singular})
	}
	return r
}

func (r *Resolver) add(pattern string, trail ...Entry) {
	r.templates = append(r.templates, template{segments: split(pattern), trail: trail})
}

// Resolve devuelve el rastro para path. Coincidencia exacta primero, luego plantillas;
// sin coincidencia: Dashboard + última sección en Title Case.
func (r *Resolver) Resolve(path string) []Entry {
	path = resource.NormalizePath(path)
	if trail, ok := r.exact[path]; ok {
		return finish(trail, nil)
	}
	segs := split(path)
	for _, t := range r.templates {
		if params, ok := match(t.segments, segs); ok {
			return finish(t.trail, params)
		}
	}
	return finish([]Entry{home, {Label: Humanize(segs[len(segs)-1])}}, nil)
}

func split(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

func match(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segs[i] == "" {
				return nil, false
			}
			params[p] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// finish copia el rastro, sustituye parámetros en los href y quita el href del último.
func finish(trail []Entry, params map[string]string) []Entry {
	out := make([]Entry, len(trail))
	for i, e := range trail {
		for k, v := range params {
			e.Href = strings.ReplaceAll(e.Href, k, v)
		}
		out[i] = e
	}
	out[len(out)-1].Href = ""
	return out
}

// Humanize "food-items" => "Food Items".
func Humanize(segment string) string {
	if segment == "" {
		return "Dashboard"
	}
	words := strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	return cases.Title(language.English).String(words)
}
