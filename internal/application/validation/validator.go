// Package validation valida los formularios del panel antes de enviarlos a la API.
// Los mensajes por campo tienen la misma forma que los 422 del servidor, así el
// navegador pinta igual un error local que uno remoto.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
	"github.com/jhoicas/wellness-admin/internal/domain"
	"github.com/jhoicas/wellness-admin/internal/domain/resource"
)

// Message mensaje general de un fallo de validación.
const Message = "Los datos enviados no son válidos"

// Validator envuelve go-playground/validator con nombres de campo JSON y decimales.
type Validator struct {
	v     *validator.Validate
	forms map[string]func() any
}

// New construye el validador con el catálogo de formularios por recurso.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return &Validator{v: v, forms: defaultForms()}
}

func defaultForms() map[string]func() any {
	return map[string]func() any{
		resource.Programs:        func() any { return &dto.ProgramForm{} },
		resource.Enrollments:     func() any { return &dto.EnrollmentForm{} },
		resource.Workouts:        func() any { return &dto.WorkoutForm{} },
		resource.FoodItems:       func() any { return &dto.FoodItemForm{} },
		resource.FoodCategories:  func() any { return &dto.FoodCategoryForm{} },
		resource.Units:           func() any { return &dto.UnitForm{} },
		resource.BlogPosts:       func() any { return &dto.BlogPostForm{} },
		resource.BlogCategories:  func() any { return &dto.BlogCategoryForm{} },
		resource.Roles:           func() any { return &dto.RoleForm{} },
		resource.Teams:           func() any { return &dto.TeamForm{} },
		resource.Users:           func() any { return &dto.UserForm{} },
		resource.Testimonials:    func() any { return &dto.TestimonialForm{} },
		resource.PaymentMethods:  func() any { return &dto.PaymentMethodForm{} },
		resource.Invoices:        func() any { return &dto.InvoiceForm{} },
		resource.OnboardingForms: func() any { return &dto.OnboardingFormForm{} },
		resource.StaffAccounts:   func() any { return &dto.StaffAccountForm{} },
	}
}

// HasForm indica si el recurso tiene formulario registrado.
func (val *Validator) HasForm(resourceKey string) bool {
	_, ok := val.forms[resourceKey]
	return ok
}

// Decode decodifica el cuerpo en el formulario del recurso, recorta los textos y valida.
// Devuelve el formulario listo para reenviar a la API o un *domain.APIError 422.
func (val *Validator) Decode(resourceKey string, body []byte) (any, error) {
	newForm, ok := val.forms[resourceKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownResource, resourceKey)
	}
	form := newForm()
	if err := json.Unmarshal(body, form); err != nil {
		return nil, decodeError(err)
	}
	trimStrings(reflect.ValueOf(form))
	if err := val.Struct(form); err != nil {
		return nil, err
	}
	return form, nil
}

// Struct valida s y traduce los fallos a mensajes por campo.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		key := fieldPath(fe.Namespace())
		fields[key] = append(fields[key], message(fe))
	}
	return domain.NewValidationError(Message, fields)
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError(Message, map[string][]string{
			typeErr.Field: {"tiene un formato inválido"},
		})
	}
	return fmt.Errorf("%w: cuerpo JSON inválido: %v", domain.ErrInvalidInput, err)
}

// fieldPath "ProgramForm.structure[0].title" => "structure[0].title".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	p := fe.Param()
	kind := fe.Kind()
	collection := kind == reflect.Slice || kind == reflect.Map || kind == reflect.Array
	text := kind == reflect.String
	switch fe.Tag() {
	case "required", "required_if":
		return "es obligatorio"
	case "min":
		switch {
		case text:
			return "debe tener al menos " + p + " caracteres"
		case collection:
			return "debe tener al menos " + p + " elementos"
		}
		return "debe ser mayor o igual a " + p
	case "max":
		switch {
		case text:
			return "debe tener como máximo " + p + " caracteres"
		case collection:
			return "debe tener como máximo " + p + " elementos"
		}
		return "debe ser menor o igual a " + p
	case "len":
		return "debe tener exactamente " + p + " caracteres"
	case "gt":
		return "debe ser mayor que " + p
	case "gte":
		return "debe ser mayor o igual a " + p
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(p, " ", ", ")
	case "email":
		return "debe ser un email válido"
	case "url":
		return "debe ser una URL válida"
	case "datetime":
		return "debe tener formato AAAA-MM-DD"
	case "uppercase":
		return "debe estar en mayúsculas"
	}
	return "no es válido"
}

// trimStrings recorta espacios en todos los textos del formulario (incluidas sub-listas),
// de modo que "   " cuente como vacío para required.
func trimStrings(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if !v.IsNil() {
			trimStrings(v.Elem())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				trimStrings(v.Field(i))
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			trimStrings(v.Index(i))
		}
	case reflect.String:
		if v.CanSet() {
			v.SetString(strings.TrimSpace(v.String()))
		}
	}
}
