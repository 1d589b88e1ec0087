package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
	"github.com/jhoicas/wellness-admin/internal/application/validation"
	"github.com/jhoicas/wellness-admin/internal/domain"
	"github.com/jhoicas/wellness-admin/internal/domain/resource"
)

const validProgram = `{
	"title": "Fuerza 101",
	"summary": "Base de fuerza en casa",
	"level": "beginner",
	"status": "draft",
	"duration_weeks": "12",
	"price": "49.90",
	"structure": [{"title": "Semanas 1-4", "weeks": 4}],
	"faqs": [{"question": "¿Necesito equipo?", "answer": "No"}]
}`

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	require.Error(t, err)
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr), "se esperaba *domain.APIError, got %T", err)
	assert.Equal(t, 422, apiErr.Status)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	return apiErr.Errors
}

func TestDecode_CoercionNumerica(t *testing.T) {
	v := validation.New()

	out, err := v.Decode(resource.Programs, []byte(validProgram))
	require.NoError(t, err)

	form, ok := out.(*dto.ProgramForm)
	require.True(t, ok)
	assert.Equal(t, dto.Int(12), form.DurationWeeks)
	assert.Equal(t, "49.9", form.Price.String())
	assert.Equal(t, dto.Int(4), form.Structure[0].Weeks)
}

func TestDecode_RechazaTextoEnBlanco(t *testing.T) {
	v := validation.New()

	_, err := v.Decode(resource.Units, []byte(`{"name":"   ","abbreviation":"g","type":"mass"}`))
	fields := fieldErrors(t, err)
	assert.Equal(t, []string{"es obligatorio"}, fields["name"])
	assert.NotContains(t, fields, "abbreviation")
}

func TestDecode_NumeroInvalido(t *testing.T) {
	v := validation.New()

	_, err := v.Decode(resource.Workouts, []byte(`{"title":"HIIT","difficulty":"hard","duration_minutes":"veinte"}`))
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "duration_minutes")
}

func TestDecode_ErroresAnidados(t *testing.T) {
	v := validation.New()

	body := `{
		"title": "Fuerza 101", "summary": "x", "level": "beginner", "status": "draft",
		"duration_weeks": 8, "price": -1,
		"structure": [{"title": "", "weeks": 2}]
	}`
	fields := fieldErrors(t, func() error { _, err := v.Decode(resource.Programs, []byte(body)); return err }())

	assert.Equal(t, []string{"es obligatorio"}, fields["structure[0].title"])
	assert.Equal(t, []string{"debe ser mayor o igual a 0"}, fields["price"])
}

func TestDecode_PreguntaSelectSinOpciones(t *testing.T) {
	v := validation.New()

	body := `{
		"title": "Alta de cliente",
		"sections": [{"title": "Hábitos", "order": "1", "questions": [
			{"label": "¿Cuántas horas duermes?", "type": "number"},
			{"label": "Objetivo", "type": "select"}
		]}]
	}`
	_, err := v.Decode(resource.OnboardingForms, []byte(body))
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "sections[0].questions[1].options")
	assert.NotContains(t, fields, "sections[0].questions[0].options")
}

func TestDecode_Oneof(t *testing.T) {
	v := validation.New()

	_, err := v.Decode(resource.PaymentMethods, []byte(`{"name":"Visa","provider":"Stripe","type":"crypto"}`))
	fields := fieldErrors(t, err)
	assert.Equal(t, []string{"debe ser uno de: card, bank_transfer, cash, wallet"}, fields["type"])
}

func TestDecode_RecursoDesconocido(t *testing.T) {
	v := validation.New()

	_, err := v.Decode("nope", []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrUnknownResource)
	assert.False(t, v.HasForm("nope"))
	assert.True(t, v.HasForm(resource.Invoices))
}

func TestDecode_JSONInvalido(t *testing.T) {
	v := validation.New()

	_, err := v.Decode(resource.Roles, []byte(`{"name":`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStruct_Login(t *testing.T) {
	v := validation.New()

	err := v.Struct(&dto.LoginRequest{Email: "no-es-email", Password: "123"})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "email")
	assert.Equal(t, []string{"debe tener al menos 6 caracteres"}, fields["password"])

	assert.NoError(t, v.Struct(&dto.LoginRequest{Email: "coach@wellness.test", Password: "secreto"}))
}
