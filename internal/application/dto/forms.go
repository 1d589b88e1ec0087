package dto

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Int entero de formulario: acepta 12 y "12". Los inputs numéricos del navegador
// llegan como texto; la coerción ocurre antes de validar.
type Int int64

func (i *Int) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if string(raw) == "null" {
		return nil
	}
	s := strings.TrimSpace(strings.Trim(string(raw), `"`))
	if s == "" {
		*i = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(s), Type: reflect.TypeOf(Int(0))}
	}
	*i = Int(n)
	return nil
}

// ── Programs ─────────────────────────────────────────────────────────────────

// ProgramForm alta/edición de programa con sus tres sub-listas.
type ProgramForm struct {
	Title         string          `json:"title" validate:"required,min=3,max=150"`
	Slug          string          `json:"slug" validate:"omitempty,max=160"`
	Summary       string          `json:"summary" validate:"required,max=300"`
	Description   string          `json:"description" validate:"omitempty,max=5000"`
	Level         string          `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Status        string          `json:"status" validate:"required,oneof=draft published archived"`
	DurationWeeks Int             `json:"duration_weeks" validate:"required,min=1,max=104"`
	Price         decimal.Decimal `json:"price" validate:"gte=0"`
	CoverImage    string          `json:"cover_image" validate:"omitempty,url"`
	Structure     []PhaseForm     `json:"structure" validate:"dive"`
	FAQs          []FAQForm       `json:"faqs" validate:"dive"`
	Outcomes      []OutcomeForm   `json:"outcomes" validate:"dive"`
}

type PhaseForm struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Weeks       Int    `json:"weeks" validate:"min=1,max=52"`
}

type FAQForm struct {
	Question string `json:"question" validate:"required,max=300"`
	Answer   string `json:"answer" validate:"required,max=2000"`
}

type OutcomeForm struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// EnrollmentForm inscripción de un usuario en un programa.
type EnrollmentForm struct {
	ProgramID Int    `json:"program_id" validate:"required,min=1"`
	UserID    Int    `json:"user_id" validate:"required,min=1"`
	Status    string `json:"status" validate:"required,oneof=pending active completed cancelled"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Progress  Int    `json:"progress" validate:"min=0,max=100"`
}

type WorkoutForm struct {
	Title           string   `json:"title" validate:"required,min=2,max=150"`
	Description     string   `json:"description" validate:"omitempty,max=2000"`
	Difficulty      string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	DurationMinutes Int      `json:"duration_minutes" validate:"required,min=1,max=600"`
	CaloriesBurned  Int      `json:"calories_burned" validate:"min=0"`
	VideoURL        string   `json:"video_url" validate:"omitempty,url"`
	Equipment       []string `json:"equipment" validate:"dive,required,max=60"`
}

// ── Nutrition ────────────────────────────────────────────────────────────────

type FoodItemForm struct {
	Name        string          `json:"name" validate:"required,max=150"`
	CategoryID  Int             `json:"category_id" validate:"required,min=1"`
	UnitID      Int             `json:"unit_id" validate:"required,min=1"`
	ServingSize decimal.Decimal `json:"serving_size" validate:"gt=0"`
	Calories    decimal.Decimal `json:"calories" validate:"gte=0"`
	Protein     decimal.Decimal `json:"protein" validate:"gte=0"`
	Carbs       decimal.Decimal `json:"carbs" validate:"gte=0"`
	Fat         decimal.Decimal `json:"fat" validate:"gte=0"`
}

// FoodCategoryForm categoría de alimentos; parent_id vacío = raíz.
type FoodCategoryForm struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=120"`
	ParentID    *Int   `json:"parent_id" validate:"omitempty,min=1"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type UnitForm struct {
	Name         string `json:"name" validate:"required,max=50"`
	Abbreviation string `json:"abbreviation" validate:"required,max=10"`
	Type         string `json:"type" validate:"required,oneof=mass volume count"`
}

// ── Content ──────────────────────────────────────────────────────────────────

type BlogPostForm struct {
	Title      string   `json:"title" validate:"required,min=3,max=200"`
	Slug       string   `json:"slug" validate:"omitempty,max=220"`
	Excerpt    string   `json:"excerpt" validate:"omitempty,max=500"`
	Body       string   `json:"body" validate:"required"`
	CategoryID Int      `json:"category_id" validate:"required,min=1"`
	Status     string   `json:"status" validate:"required,oneof=draft published"`
	Tags       []string `json:"tags" validate:"dive,required,max=40"`
	CoverImage string   `json:"cover_image" validate:"omitempty,url"`
}

type BlogCategoryForm struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Slug     string `json:"slug" validate:"omitempty,max=120"`
	ParentID *Int   `json:"parent_id" validate:"omitempty,min=1"`
}

type TestimonialForm struct {
	AuthorName string `json:"author_name" validate:"required,max=100"`
	Quote      string `json:"quote" validate:"required,min=10,max=1000"`
	Rating     Int    `json:"rating" validate:"required,min=1,max=5"`
	ProgramID  *Int   `json:"program_id" validate:"omitempty,min=1"`
	Published  bool   `json:"published"`
}

// ── Access ───────────────────────────────────────────────────────────────────

type RoleForm struct {
	Name        string   `json:"name" validate:"required,min=2,max=60"`
	Description string   `json:"description" validate:"omitempty,max=255"`
	Permissions []string `json:"permissions" validate:"required,min=1,dive,required"`
}

type TeamForm struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	LeadID      *Int   `json:"lead_id" validate:"omitempty,min=1"`
}

type UserForm struct {
	Name   string `json:"name" validate:"required,min=2,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"omitempty,max=30"`
	Status string `json:"status" validate:"required,oneof=active inactive suspended"`
	RoleID *Int   `json:"role_id" validate:"omitempty,min=1"`
	TeamID *Int   `json:"team_id" validate:"omitempty,min=1"`
}

type StaffAccountForm struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Position string `json:"position" validate:"omitempty,max=100"`
	RoleID   Int    `json:"role_id" validate:"required,min=1"`
	TeamID   *Int   `json:"team_id" validate:"omitempty,min=1"`
	IsActive bool   `json:"is_active"`
}

// ── Billing ──────────────────────────────────────────────────────────────────

type PaymentMethodForm struct {
	Name     string `json:"name" validate:"required,max=100"`
	Provider string `json:"provider" validate:"required,max=100"`
	Type     string `json:"type" validate:"required,oneof=card bank_transfer cash wallet"`
	IsActive bool   `json:"is_active"`
}

// InvoiceForm factura; los totales los recalcula el servidor a partir de las líneas.
type InvoiceForm struct {
	UserID        Int               `json:"user_id" validate:"required,min=1"`
	Status        string            `json:"status" validate:"required,oneof=draft pending paid overdue cancelled"`
	Currency      string            `json:"currency" validate:"required,len=3,uppercase"`
	DueAt         string            `json:"due_at" validate:"omitempty,datetime=2006-01-02"`
	Items         []InvoiceItemForm `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"omitempty,max=60"`
	Notes         string            `json:"notes" validate:"omitempty,max=1000"`
}

type InvoiceItemForm struct {
	Description string          `json:"description" validate:"required,max=255"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

// ── Clients ──────────────────────────────────────────────────────────────────

// OnboardingFormForm cuestionario: secciones → preguntas. Las preguntas "select" exigen opciones.
type OnboardingFormForm struct {
	Title       string                  `json:"title" validate:"required,min=3,max=150"`
	Description string                  `json:"description" validate:"omitempty,max=1000"`
	IsActive    bool                    `json:"is_active"`
	Sections    []OnboardingSectionForm `json:"sections" validate:"required,min=1,dive"`
}

type OnboardingSectionForm struct {
	Title     string                   `json:"title" validate:"required,max=150"`
	Order     Int                      `json:"order" validate:"min=0"`
	Questions []OnboardingQuestionForm `json:"questions" validate:"required,min=1,dive"`
}

type OnboardingQuestionForm struct {
	Label    string   `json:"label" validate:"required,max=255"`
	Type     string   `json:"type" validate:"required,oneof=text textarea select checkbox number date"`
	Required bool     `json:"required"`
	Options  []string `json:"options" validate:"required_if=Type select,dive,required,max=120"`
}
