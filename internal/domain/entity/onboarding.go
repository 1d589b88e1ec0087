package entity

// OnboardingForm cuestionario de alta de clientes, organizado en secciones con preguntas.
type OnboardingForm struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	IsActive    bool                `json:"is_active"`
	Sections    []OnboardingSection `json:"sections"`
	Actions     Actions             `json:"actions"`
}

type OnboardingSection struct {
	ID        int64                `json:"id,omitempty"`
	Title     string               `json:"title"`
	Order     int                  `json:"order"`
	Questions []OnboardingQuestion `json:"questions"`
}

type OnboardingQuestion struct {
	ID       int64    `json:"id,omitempty"`
	Label    string   `json:"label"`
	Type     string   `json:"type"` // text, textarea, select, checkbox, number, date
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}
