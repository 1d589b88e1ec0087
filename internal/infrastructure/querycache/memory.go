package querycache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore store en proceso con expiración por inactividad y expulsión LRU
// cuando se alcanza maxSize.
type MemoryStore struct {
	mu          sync.Mutex
	items       map[string]*list.Element
	lru         *list.List // front = usado más recientemente
	maxSize     int
	inactiveFor time.Duration
	now         func() time.Time
}

type memoryEntry struct {
	key        string
	entry      Entry
	lastAccess time.Time
}

// NewMemoryStore crea el store. now nil => time.Now.
func NewMemoryStore(inactiveFor time.Duration, maxSize int, now func() time.Time) *MemoryStore {
	if maxSize <= 0 {
		maxSize = 5000
	}
	if inactiveFor <= 0 {
		inactiveFor = 10 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		items:       make(map[string]*list.Element),
		lru:         list.New(),
		maxSize:     maxSize,
		inactiveFor: inactiveFor,
		now:         now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return Entry{}, false, nil
	}
	me := elem.Value.(*memoryEntry)
	now := s.now()
	if now.Sub(me.lastAccess) >= s.inactiveFor {
		s.removeLocked(elem)
		return Entry{}, false, nil
	}
	me.lastAccess = now
	s.lru.MoveToFront(elem)
	return me.entry, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if elem, ok := s.items[key]; ok {
		me := elem.Value.(*memoryEntry)
		me.entry = e
		me.lastAccess = now
		s.lru.MoveToFront(elem)
		return nil
	}
	for s.lru.Len() >= s.maxSize {
		s.removeLocked(s.lru.Back())
	}
	s.items[key] = s.lru.PushFront(&memoryEntry{key: key, entry: e, lastAccess: now})
	return nil
}

func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, elem := range s.items {
		if strings.HasPrefix(key, prefix) {
			s.removeLocked(elem)
			n++
		}
	}
	return n, nil
}

// Len entradas almacenadas (incluidas las inactivas aún no purgadas).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// PurgeInactive elimina las entradas sin acceso durante la ventana de inactividad.
func (s *MemoryStore) PurgeInactive() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	// Desde el fondo de la LRU: en cuanto una entrada está activa, las siguientes también.
	for elem := s.lru.Back(); elem != nil; {
		me := elem.Value.(*memoryEntry)
		if now.Sub(me.lastAccess) < s.inactiveFor {
			break
		}
		prev := elem.Prev()
		s.removeLocked(elem)
		n++
		elem = prev
	}
	return n
}

// Run purga periódicamente hasta que ctx se cancele.
func (s *MemoryStore) Run(ctx context.Context, every time.Duration, log zerolog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.PurgeInactive(); n > 0 {
				log.Debug().Int("purged", n).Msg("entradas inactivas eliminadas")
			}
		}
	}
}

func (s *MemoryStore) removeLocked(elem *list.Element) {
	me := elem.Value.(*memoryEntry)
	delete(s.items, me.key)
	s.lru.Remove(elem)
}
