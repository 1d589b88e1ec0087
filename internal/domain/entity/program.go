package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Program representa un programa de entrenamiento/bienestar con sus sub-listas
// (estructura por fases, preguntas frecuentes y resultados esperados).
type Program struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Slug          string           `json:"slug"`
	Summary       string           `json:"summary"`
	Description   string           `json:"description"`
	Level         string           `json:"level"`  // beginner, intermediate, advanced
	Status        string           `json:"status"` // draft, published, archived
	DurationWeeks int              `json:"duration_weeks"`
	Price         decimal.Decimal  `json:"price"`
	CoverImage    string           `json:"cover_image,omitempty"`
	Structure     []ProgramPhase   `json:"structure"`
	FAQs          []ProgramFAQ     `json:"faqs"`
	Outcomes      []ProgramOutcome `json:"outcomes"`
	CreatedAt     *time.Time       `json:"created_at,omitempty"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty"`
	Actions       Actions          `json:"actions"`
}

// ProgramPhase bloque de la estructura del programa (ej. "Semana 1-4: base aeróbica").
type ProgramPhase struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Weeks       int    `json:"weeks"`
}

type ProgramFAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ProgramOutcome struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
