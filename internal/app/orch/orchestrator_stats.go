package orch

import (
	"github.com/dkeye/disagree/internal/core"
	"github.com/dkeye/disagree/internal/domain"
)

// Rooms lists current rooms in creation order.
func (o *Orchestrator) Rooms() []domain.Room {
	return o.Registry.List()
}

func (o *Orchestrator) Room(id domain.RoomID) (domain.Room, bool) {
	return o.Registry.FindByID(id)
}

func (o *Orchestrator) Stats() core.Stats {
	return core.Stats{
		UsersOnline:   o.Directory.LiveCount(),
		ActiveDebates: o.Registry.Len(),
		DebatesToday:  o.Registry.CreatedToday(),
	}
}

// Whoami reports the seat held by id, if any.
func (o *Orchestrator) Whoami(id domain.ConnID) (domain.Membership, bool) {
	return o.Directory.Lookup(id)
}

// BroadcastStats pushes the current counters to every live connection.
func (o *Orchestrator) BroadcastStats() {
	o.mu.Lock()
	defer o.mu.Unlock()
	ev := core.StatsUpdate(o.Stats())
	for _, id := range o.Directory.LiveIDs() {
		o.deliverLocked(id, ev)
	}
}
