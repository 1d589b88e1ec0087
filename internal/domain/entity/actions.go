package entity

// Actions pista de permisos que el servidor devuelve por registro.
type Actions struct {
	Editable  bool `json:"editable"`
	Deletable bool `json:"deletable"`
}
