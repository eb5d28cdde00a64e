package identity

import (
	"sync"

	"github.com/SHAHRIARJAHIN/club-management/internal/models"
)

// listenerRegistry fans out auth transitions to subscribers. Callbacks
// receive the new session on sign-in and nil on sign-out or revocation.
type listenerRegistry struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(*models.Session)
}

func (r *listenerRegistry) add(fn func(*models.Session)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subs == nil {
		r.subs = make(map[int]func(*models.Session))
	}
	id := r.nextID
	r.nextID++
	r.subs[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs, id)
	}
}

func (r *listenerRegistry) notify(session *models.Session) {
	r.mu.Lock()
	fns := make([]func(*models.Session), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

// Subscribe registers fn for session-change notifications and returns an
// unsubscribe handle. The handle must be called when the owning component
// is torn down.
func (s *Service) Subscribe(fn func(*models.Session)) func() {
	return s.listeners.add(fn)
}
