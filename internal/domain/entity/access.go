package entity

// Role rol de acceso al panel con sus permisos.
type Role struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	Actions     Actions  `json:"actions"`
}

// Team equipo de coaches/staff.
type Team struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	LeadID      *int64  `json:"lead_id"`
	MemberCount int     `json:"member_count"`
	Actions     Actions `json:"actions"`
}
