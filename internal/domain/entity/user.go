package entity

import "time"

// User cliente final de la plataforma.
type User struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Status    string     `json:"status"` // active, inactive, suspended
	RoleID    *int64     `json:"role_id"`
	TeamID    *int64     `json:"team_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Actions   Actions    `json:"actions"`
}

// StaffAccount cuenta interna con acceso al panel.
type StaffAccount struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Position string  `json:"position"`
	RoleID   int64   `json:"role_id"`
	TeamID   *int64  `json:"team_id"`
	IsActive bool    `json:"is_active"`
	Actions  Actions `json:"actions"`
}
