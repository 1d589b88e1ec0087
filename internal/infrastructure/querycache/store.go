// Package querycache cachea las lecturas a la API por clave: una entrada está fresca
// durante FreshFor; pasada esa ventana la siguiente lectura vuelve a pedirla, y una
// entrada sin accesos durante InactiveFor se descarta.
package querycache

import (
	"context"
	"time"
)

// Entry valor cacheado con el instante en que se obtuvo.
type Entry struct {
	Value     []byte    `json:"v"`
	FetchedAt time.Time `json:"t"`
}

// Store backend de almacenamiento. Get refresca la ventana de inactividad de la clave.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}
