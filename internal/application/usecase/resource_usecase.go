package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
	"github.com/jhoicas/wellness-admin/internal/application/ports"
	"github.com/jhoicas/wellness-admin/internal/application/table"
	"github.com/jhoicas/wellness-admin/internal/application/validation"
	"github.com/jhoicas/wellness-admin/internal/domain"
	"github.com/jhoicas/wellness-admin/internal/domain/breadcrumb"
	"github.com/jhoicas/wellness-admin/internal/domain/entity"
	"github.com/jhoicas/wellness-admin/internal/domain/resource"
)

// ResourceUseCase CRUD genérico sobre los recursos del registro. Las lecturas pasan
// por la caché; las escrituras validan localmente y luego invalidan el recurso.
type ResourceUseCase struct {
	registry  *resource.Registry
	trails    *breadcrumb.Resolver
	upstream  ports.UpstreamClient
	cache     ports.QueryCache
	validator *validation.Validator
	log       zerolog.Logger
}

// NewResourceUseCase construye el caso de uso.
func NewResourceUseCase(
	registry *resource.Registry,
	trails *breadcrumb.Resolver,
	upstream ports.UpstreamClient,
	cache ports.QueryCache,
	validator *validation.Validator,
	log zerolog.Logger,
) *ResourceUseCase {
	return &ResourceUseCase{
		registry:  registry,
		trails:    trails,
		upstream:  upstream,
		cache:     cache,
		validator: validator,
		log:       log,
	}
}

// Scope identifica la sesión en las claves de caché: hash del token completo, o
// "anon" sin token. Los claims no sirven: el BFF no verifica la firma.
func Scope(ctx context.Context) string {
	tok := ports.AccessToken(ctx)
	if tok == "" {
		return "anon"
	}
	sum := sha256.Sum256([]byte(tok))
	return "t" + hex.EncodeToString(sum[:])
}

// CacheKey "{recurso}|{scope}". Las invalidaciones usan "{recurso}|" como prefijo.
func CacheKey(resourceKey, scope string) string {
	return resourceKey + "|" + scope
}

func lookupKey(name string) string { return "lookup:" + name }

// Resource devuelve la definición del recurso o ErrUnknownResource.
func (uc *ResourceUseCase) Resource(key string) (resource.Resource, error) {
	res, ok := uc.registry.Get(key)
	if !ok {
		return resource.Resource{}, fmt.Errorf("%w: %s", domain.ErrUnknownResource, key)
	}
	return res, nil
}

// Table hook de tabla del recurso ligado a este caso de uso como loader.
func (uc *ResourceUseCase) Table(ctx context.Context, res resource.Resource) *table.Table {
	return table.New(res.Endpoint, CacheKey(res.Key, Scope(ctx)), res.DefaultSort, res.DefaultDirection, uc,
		table.WithSortable(res.IsSortable))
}

// LoadPage implementa table.Loader: GET cacheado con clave "{cacheKey}|{params}".
func (uc *ResourceUseCase) LoadPage(ctx context.Context, endpoint, cacheKey string, params url.Values) (*dto.Envelope, error) {
	return uc.cachedGet(ctx, cacheKey+"|"+params.Encode(), endpoint, params)
}

func (uc *ResourceUseCase) cachedGet(ctx context.Context, key, endpoint string, params url.Values) (*dto.Envelope, error) {
	raw, err := uc.cache.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		env, err := uc.upstream.Do(ctx, ports.UpstreamRequest{Method: http.MethodGet, Path: endpoint, Query: params})
		if err != nil {
			return nil, err
		}
		return json.Marshal(env)
	})
	if err != nil {
		return nil, err
	}
	var env dto.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("cache: entrada corrupta %q: %w", key, err)
	}
	return &env, nil
}

// List página de listado: cabecera, breadcrumbs y la tabla con los parámetros pedidos.
// Un fallo del upstream no es error aquí: la tabla queda en estado "error".
func (uc *ResourceUseCase) List(ctx context.Context, key string, params url.Values) (*dto.ListPage, error) {
	res, err := uc.Resource(key)
	if err != nil {
		return nil, err
	}
	tb := uc.Table(ctx, res)
	result := tb.Apply(ctx, params)
	if result.Err != nil {
		uc.log.Warn().Err(result.Err).Str("resource", key).Msg("listado fallido")
	}
	return &dto.ListPage{
		Resource:    res.Key,
		Title:       res.Label,
		CreateHref:  res.CreatePath(),
		Breadcrumbs: uc.trails.Resolve(res.Path),
		Table:       table.View(res, tb),
	}, nil
}

// Skeleton vista de carga con tantas filas como per_page pida.
func (uc *ResourceUseCase) Skeleton(key string, params url.Values) (dto.TableView, error) {
	res, err := uc.Resource(key)
	if err != nil {
		return dto.TableView{}, err
	}
	q := table.NewQuery(res.DefaultSort, res.DefaultDirection).With(params, res.IsSortable)
	return table.Placeholder(res, q), nil
}

// Show registro tipado por id.
func (uc *ResourceUseCase) Show(ctx context.Context, key, id string) (any, error) {
	res, err := uc.Resource(key)
	if err != nil {
		return nil, err
	}
	id, err = cleanID(id)
	if err != nil {
		return nil, err
	}
	env, err := uc.cachedGet(ctx, CacheKey(res.Key, Scope(ctx))+"|show:"+id, res.ItemEndpoint(id), nil)
	if err != nil {
		return nil, err
	}
	out := res.Entity()
	if err := json.Unmarshal(env.Data, out); err != nil {
		return nil, fmt.Errorf("%w: %s %s ilegible: %v", domain.ErrUpstream, res.Singular, id, err)
	}
	return out, nil
}

// Create valida el cuerpo contra el formulario del recurso y lo envía a la API.
func (uc *ResourceUseCase) Create(ctx context.Context, key string, body []byte) (json.RawMessage, error) {
	res, err := uc.Resource(key)
	if err != nil {
		return nil, err
	}
	if !res.Creatable {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotCreatable, key)
	}
	return uc.write(ctx, res, http.MethodPost, res.Endpoint, body)
}

// Update valida y reemplaza el registro id.
func (uc *ResourceUseCase) Update(ctx context.Context, key, id string, body []byte) (json.RawMessage, error) {
	res, err := uc.Resource(key)
	if err != nil {
		return nil, err
	}
	id, err = cleanID(id)
	if err != nil {
		return nil, err
	}
	return uc.write(ctx, res, http.MethodPut, res.ItemEndpoint(id), body)
}

// Delete borra el registro id.
func (uc *ResourceUseCase) Delete(ctx context.Context, key, id string) error {
	res, err := uc.Resource(key)
	if err != nil {
		return err
	}
	id, err = cleanID(id)
	if err != nil {
		return err
	}
	if _, err := uc.upstream.Do(ctx, ports.UpstreamRequest{Method: http.MethodDelete, Path: res.ItemEndpoint(id)}); err != nil {
		return err
	}
	uc.invalidate(ctx, res.Key)
	return nil
}

func (uc *ResourceUseCase) write(ctx context.Context, res resource.Resource, method, path string, body []byte) (json.RawMessage, error) {
	// Sin formulario registrado el recurso es de solo lectura.
	if !uc.validator.HasForm(res.Key) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotCreatable, res.Key)
	}
	form, err := uc.validator.Decode(res.Key, body)
	if err != nil {
		return nil, err
	}
	env, err := uc.upstream.Do(ctx, ports.UpstreamRequest{Method: method, Path: path, Body: form})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, res.Key)
	return env.Data, nil
}

// invalidate descarta listados, detalles y lookups del recurso para todos los usuarios.
// Un fallo de la caché no revierte la escritura ya hecha.
func (uc *ResourceUseCase) invalidate(ctx context.Context, key string) {
	for _, prefix := range []string{key + "|", lookupKey(key) + "|"} {
		if err := uc.cache.Invalidate(ctx, prefix); err != nil {
			uc.log.Warn().Err(err).Str("prefix", prefix).Msg("no se pudo invalidar la caché")
		}
	}
}

// Lookup opciones de un select. Las categorías se devuelven como árbol de un nivel
// y se rechaza cualquier otra forma.
func (uc *ResourceUseCase) Lookup(ctx context.Context, name string) (any, error) {
	l, ok := uc.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: lookup %s", domain.ErrUnknownResource, name)
	}
	env, err := uc.cachedGet(ctx, CacheKey(lookupKey(name), Scope(ctx)), l.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	if !l.Tree {
		return env.Data, nil
	}
	var cats []entity.Category
	if err := json.Unmarshal(env.Data, &cats); err != nil {
		return nil, fmt.Errorf("%w: lookup %s: %v", domain.ErrUpstream, name, err)
	}
	if isFlat(cats) {
		if cats, err = entity.BuildCategoryTree(cats); err != nil {
			return nil, fmt.Errorf("%w: lookup %s: %v", domain.ErrUpstream, name, err)
		}
	}
	if err := entity.ValidateCategoryTree(cats); err != nil {
		return nil, fmt.Errorf("%w: lookup %s: %v", domain.ErrUpstream, name, err)
	}
	return cats, nil
}

// isFlat la API devolvió hijos como filas sueltas (con parent_id) en vez de anidados.
func isFlat(cats []entity.Category) bool {
	for _, c := range cats {
		if !c.IsRoot() {
			return true
		}
	}
	return false
}

func cleanID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "/?#") {
		return "", fmt.Errorf("%w: id %q", domain.ErrInvalidInput, id)
	}
	return url.PathEscape(id), nil
}
