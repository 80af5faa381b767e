package app

import (
	"slices"
	"sync"

	"github.com/dkeye/disagree/internal/core"
	"github.com/dkeye/disagree/internal/domain"
	"github.com/rs/zerolog/log"
)

// Directory tracks live connections and the room seat each one holds.
// Liveness (Attach/Detach) and membership (Bind/Unbind) are separate:
// a connection is live from upgrade to disconnect, and holds at most one seat meanwhile.
type Directory struct {
	mu      sync.RWMutex
	conns   map[domain.ConnID]core.SignalConnection
	members map[domain.ConnID]domain.Membership
	byRoom  map[domain.RoomID]map[domain.ConnID]struct{}
}

func NewDirectory() *Directory {
	return &Directory{
		conns:   make(map[domain.ConnID]core.SignalConnection),
		members: make(map[domain.ConnID]domain.Membership),
		byRoom:  make(map[domain.RoomID]map[domain.ConnID]struct{}),
	}
}

func (d *Directory) Attach(id domain.ConnID, conn core.SignalConnection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.conns[id] = conn
	log.Debug().Str("module", "app.directory").Str("conn", string(id)).Msg("attached connection")
}

func (d *Directory) Detach(id domain.ConnID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.conns, id)
	log.Debug().Str("module", "app.directory").Str("conn", string(id)).Msg("detached connection")
}

func (d *Directory) Conn(id domain.ConnID) (core.SignalConnection, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.conns[id]
	return c, ok
}

func (d *Directory) Live(id domain.ConnID) bool {
	_, ok := d.Conn(id)
	return ok
}

func (d *Directory) LiveCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.conns)
}

// LiveIDs returns a sorted snapshot of every live connection.
func (d *Directory) LiveIDs() []domain.ConnID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.ConnID, 0, len(d.conns))
	for id := range d.conns {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Bind seats id in roomID, abandoning any previous seat.
func (d *Directory) Bind(id domain.ConnID, roomID domain.RoomID, role domain.Role) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unbindLocked(id)
	d.members[id] = domain.Membership{RoomID: roomID, Role: role}
	set, ok := d.byRoom[roomID]
	if !ok {
		set = make(map[domain.ConnID]struct{}, domain.Capacity)
		d.byRoom[roomID] = set
	}
	set[id] = struct{}{}
	log.Info().Str("module", "app.directory").Str("conn", string(id)).Int64("room", int64(roomID)).Str("role", string(role)).Msg("bound membership")
}

// Unbind drops the seat held by id. Unbinding twice is a no-op.
func (d *Directory) Unbind(id domain.ConnID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.unbindLocked(id) {
		log.Info().Str("module", "app.directory").Str("conn", string(id)).Msg("unbound membership")
	}
}

func (d *Directory) unbindLocked(id domain.ConnID) bool {
	m, ok := d.members[id]
	if !ok {
		return false
	}
	delete(d.members, id)
	if set, ok := d.byRoom[m.RoomID]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(d.byRoom, m.RoomID)
		}
	}
	return true
}

func (d *Directory) Lookup(id domain.ConnID) (domain.Membership, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.members[id]
	return m, ok
}

// MembersOf returns a sorted snapshot of the connections seated in roomID.
func (d *Directory) MembersOf(roomID domain.RoomID) []domain.ConnID {
	d.mu.RLock()
	defer d.mu.RUnlock()
	set := d.byRoom[roomID]
	out := make([]domain.ConnID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// RoomMates is MembersOf without id itself.
func (d *Directory) RoomMates(id domain.ConnID) []domain.ConnID {
	m, ok := d.Lookup(id)
	if !ok {
		return nil
	}
	return slices.DeleteFunc(d.MembersOf(m.RoomID), func(other domain.ConnID) bool { return other == id })
}
