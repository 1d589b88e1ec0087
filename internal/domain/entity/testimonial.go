package entity

// Testimonial opinión de un cliente, opcionalmente ligada a un programa.
type Testimonial struct {
	ID         int64   `json:"id"`
	AuthorName string  `json:"author_name"`
	Quote      string  `json:"quote"`
	Rating     int     `json:"rating"` // 1-5
	ProgramID  *int64  `json:"program_id"`
	Published  bool    `json:"published"`
	Actions    Actions `json:"actions"`
}
