package entity

// Workout sesión de ejercicio reutilizable dentro de los programas.
type Workout struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Difficulty      string   `json:"difficulty"` // easy, medium, hard
	DurationMinutes int      `json:"duration_minutes"`
	CaloriesBurned  int      `json:"calories_burned"`
	VideoURL        string   `json:"video_url,omitempty"`
	Equipment       []string `json:"equipment"`
	Actions         Actions  `json:"actions"`
}
