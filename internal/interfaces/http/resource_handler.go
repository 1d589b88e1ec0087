package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/wellness-admin/internal/application/billing"
	"github.com/jhoicas/wellness-admin/internal/application/dto"
	"github.com/jhoicas/wellness-admin/internal/application/usecase"
	"github.com/jhoicas/wellness-admin/internal/domain"
)

// ResourceHandler CRUD genérico de /api/admin/:resource.
type ResourceHandler struct {
	uc  *usecase.ResourceUseCase
	pdf *billing.PDFUseCase
}

// NewResourceHandler construye el handler. pdf puede ser nil si no se exporta.
func NewResourceHandler(uc *usecase.ResourceUseCase, pdf *billing.PDFUseCase) *ResourceHandler {
	return &ResourceHandler{uc: uc, pdf: pdf}
}

// List godoc
// @Summary      Listado paginado de un recurso
// @Tags         admin
// @Produce      json
// @Param        resource   path   string  true   "clave del recurso (programs, food-items...)"
// @Param        page       query  int     false  "página"
// @Param        per_page   query  int     false  "tamaño de página (1-100)"
// @Param        sort       query  string  false  "campo de orden"
// @Param        direction  query  string  false  "asc | desc"
// @Param        search     query  string  false  "búsqueda"
// @Success      200  {object}  dto.ListPage
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/{resource} [get]
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.UserContext(), c.Params("resource"), queryValues(c))
	if err != nil {
		return respondError(c, err)
	}
	// La tabla en estado error también es una respuesta válida, salvo un 401.
	if page.Table.Error != nil && page.Table.Error.Code == string(domain.KindUnauthorized) {
		markUnauthorized(c)
		return c.Status(fiber.StatusUnauthorized).JSON(page.Table.Error)
	}
	return c.JSON(dto.OK(page))
}

// Skeleton vista de carga del recurso.
// GET /api/admin/:resource/skeleton
func (h *ResourceHandler) Skeleton(c *fiber.Ctx) error {
	view, err := h.uc.Skeleton(c.Params("resource"), queryValues(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(view))
}

// Show godoc
// @Summary      Detalle de un registro
// @Tags         admin
// @Produce      json
// @Param        resource  path  string  true  "clave del recurso"
// @Param        id        path  string  true  "id del registro"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/{resource}/{id} [get]
func (h *ResourceHandler) Show(c *fiber.Ctx) error {
	rec, err := h.uc.Show(c.UserContext(), c.Params("resource"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(rec))
}

// Create godoc
// @Summary      Alta de un registro (validado antes de llegar a la API)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        resource  path  string  true  "clave del recurso"
// @Success      201  {object}  dto.Response
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/admin/{resource} [post]
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	data, err := h.uc.Create(c.UserContext(), c.Params("resource"), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(data))
}

// Update reemplaza un registro.
// PUT /api/admin/:resource/:id
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	data, err := h.uc.Update(c.UserContext(), c.Params("resource"), c.Params("id"), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(data))
}

// Delete DELETE /api/admin/:resource/:id
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("resource"), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Lookup opciones de un select de formulario.
// GET /api/lookup/:name
func (h *ResourceHandler) Lookup(c *fiber.Ctx) error {
	opts, err := h.uc.Lookup(c.UserContext(), c.Params("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(opts))
}

// InvoicePDF godoc
// @Summary      Descargar factura en PDF
// @Tags         admin
// @Produce      application/pdf
// @Param        id  path  string  true  "id de la factura"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/invoices/{id}/pdf [get]
func (h *ResourceHandler) InvoicePDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	out, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}

// queryValues copia la query string; fasthttp reutiliza sus buffers tras la respuesta.
func queryValues(c *fiber.Ctx) url.Values {
	v := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		v.Add(string(key), string(value))
	})
	return v
}
