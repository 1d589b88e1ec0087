package entity

import "time"

// Enrollment inscripción de un usuario en un programa.
type Enrollment struct {
	ID           int64      `json:"id"`
	ProgramID    int64      `json:"program_id"`
	ProgramTitle string     `json:"program_title,omitempty"`
	UserID       int64      `json:"user_id"`
	UserName     string     `json:"user_name,omitempty"`
	Status       string     `json:"status"`     // pending, active, completed, cancelled
	StartDate    string     `json:"start_date"` // YYYY-MM-DD
	EndDate      string     `json:"end_date,omitempty"`
	Progress     int        `json:"progress"` // 0-100
	CreatedAt    *time.Time `json:"created_at,omitempty"`
	Actions      Actions    `json:"actions"`
}
