package app

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dkeye/disagree/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry is the authoritative in-memory set of rooms.
// Ids are assigned monotonically and never reused while the process runs.
type Registry struct {
	mu     sync.RWMutex
	now    func() time.Time
	nextID domain.RoomID
	rooms  map[domain.RoomID]*domain.Room
	order  []domain.RoomID

	day          string
	createdToday int
}

type RegistryOption func(*Registry)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		now:   time.Now,
		rooms: make(map[domain.RoomID]*domain.Room),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Create(name string, stance domain.Stance, owner domain.ConnID) (domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	room, err := domain.NewRoom(r.nextID+1, name, stance, owner, now)
	if err != nil {
		return domain.Room{}, err
	}
	r.nextID = room.ID
	r.rooms[room.ID] = &room
	r.order = append(r.order, room.ID)

	r.rollDayLocked(now)
	r.createdToday++

	log.Info().Str("module", "app.registry").Int64("room", int64(room.ID)).Str("name", room.Name).Str("owner", string(owner)).Msg("room created")
	return room, nil
}

func (r *Registry) FindByID(id domain.RoomID) (domain.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, false
	}
	return *room, true
}

// SetParticipants moves a room between forming and active.
func (r *Registry) SetParticipants(id domain.RoomID, n int) (domain.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	if n < 0 || n > room.Capacity {
		return domain.Room{}, fmt.Errorf("%w: participant count %d outside 0..%d", domain.ErrInvalidInput, n, room.Capacity)
	}
	prev := room.State
	room.ParticipantCount = n
	if room.Full() {
		room.State = domain.RoomActive
	} else {
		room.State = domain.RoomForming
		if prev == domain.RoomActive {
			room.WaitingSince = r.now()
		}
	}
	return *room, nil
}

// Delete removes the room. Deleting an absent id is a no-op.
func (r *Registry) Delete(id domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return
	}
	delete(r.rooms, id)
	r.order = slices.DeleteFunc(r.order, func(other domain.RoomID) bool { return other == id })
	log.Info().Str("module", "app.registry").Int64("room", int64(id)).Msg("room deleted")
}

// List returns snapshots in creation order.
func (r *Registry) List() []domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Room, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.rooms[id])
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// CreatedToday counts rooms created since local midnight of the registry clock.
func (r *Registry) CreatedToday() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollDayLocked(r.now())
	return r.createdToday
}

func (r *Registry) rollDayLocked(now time.Time) {
	day := now.Format(time.DateOnly)
	if day != r.day {
		r.day = day
		r.createdToday = 0
	}
}
