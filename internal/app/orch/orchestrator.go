package orch

import (
	"sync"
	"time"

	"github.com/dkeye/disagree/internal/app"
	"github.com/dkeye/disagree/internal/core"
	"github.com/dkeye/disagree/internal/domain"
	"github.com/rs/zerolog/log"
)

// Orchestrator is the session coordinator. Every handler runs under mu, so a
// check-then-mutate on a room is atomic with respect to every other event.
// Notifications go out through non-blocking Send while mu is held, which keeps
// per-connection delivery in handling order.
type Orchestrator struct {
	Registry  *app.Registry
	Directory *app.Directory
	Policy    app.Policy

	// FormingTTL closes rooms that waited this long for a partner. Zero disables it.
	FormingTTL time.Duration
	Clock      func() time.Time

	mu sync.Mutex
}

func New(reg *app.Registry, dir *app.Directory, policy app.Policy) *Orchestrator {
	return &Orchestrator{
		Registry:  reg,
		Directory: dir,
		Policy:    policy,
	}
}

func (o *Orchestrator) now() time.Time {
	if o.Clock != nil {
		return o.Clock()
	}
	return time.Now()
}

// Connect makes a transport endpoint addressable.
func (o *Orchestrator) Connect(id domain.ConnID, conn core.SignalConnection) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Directory.Attach(id, conn)
	log.Info().Str("module", "orch").Str("conn", string(id)).Msg("connected")
}

// Disconnect handles transport loss. The connection's own entries go first so
// nothing below can address it.
func (o *Orchestrator) Disconnect(id domain.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	m, seated := o.Directory.Lookup(id)
	o.Directory.Unbind(id)
	o.Directory.Detach(id)
	log.Info().Str("module", "orch").Str("conn", string(id)).Bool("seated", seated).Msg("disconnected")
	if !seated {
		return
	}

	room, ok := o.Registry.FindByID(m.RoomID)
	if !ok {
		return
	}

	if m.IsOwner() {
		o.closeRoomLocked(room, "owner disconnected")
		return
	}

	room, err := o.Registry.SetParticipants(room.ID, room.ParticipantCount-1)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Int64("room", int64(m.RoomID)).Msg("disconnect: update participants")
		return
	}
	if room.ParticipantCount == 0 {
		o.Registry.Delete(room.ID)
		return
	}
	if o.Directory.Live(room.Owner) {
		o.deliverLocked(room.Owner, core.RedirectWaiting(room))
	}
}

// closeRoomLocked sends every remaining member home, unseats them, and deletes the room.
func (o *Orchestrator) closeRoomLocked(room domain.Room, reason string) {
	for _, mate := range o.Directory.MembersOf(room.ID) {
		o.Directory.Unbind(mate)
		o.deliverLocked(mate, core.RedirectHome())
	}
	o.Registry.Delete(room.ID)
	log.Info().Str("module", "orch").Int64("room", int64(room.ID)).Str("reason", reason).Msg("room closed")
}

// deliverLocked is fire-and-forget. A missing target is not an error; a full
// buffer is resolved by Policy.
func (o *Orchestrator) deliverLocked(to domain.ConnID, ev core.Event) {
	conn, ok := o.Directory.Conn(to)
	if !ok {
		log.Debug().Str("module", "orch").Str("to", string(to)).Str("event", ev.Type).Msg("target not live, dropped")
		return
	}
	err := conn.Send(ev)
	if err == nil {
		return
	}

	action := app.KickMember
	if o.Policy != nil {
		action = o.Policy.OnBackPressure(to, ev)
	}
	switch action {
	case app.KickMember:
		log.Warn().Err(err).Str("module", "orch").Str("to", string(to)).Str("event", ev.Type).Msg("send failed, closing connection")
		// Close ends the read pump, which reports Disconnect on its own goroutine.
		conn.Close()
	case app.DropFrame, app.NoAction:
		log.Debug().Err(err).Str("module", "orch").Str("to", string(to)).Str("event", ev.Type).Msg("send failed, dropped")
	}
}
