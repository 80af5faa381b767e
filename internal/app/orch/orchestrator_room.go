package orch

import (
	"github.com/dkeye/disagree/internal/core"
	"github.com/dkeye/disagree/internal/domain"
	"github.com/rs/zerolog/log"
)

// CreateRoom opens a forming room owned by id.
func (o *Orchestrator) CreateRoom(id domain.ConnID, name string, stance domain.Stance) (domain.Room, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.Directory.Lookup(id); ok {
		return domain.Room{}, domain.ErrAlreadyInRoom
	}
	room, err := o.Registry.Create(name, stance, id)
	if err != nil {
		log.Info().Err(err).Str("module", "orch").Str("conn", string(id)).Msg("create rejected")
		return domain.Room{}, err
	}
	o.Directory.Bind(id, room.ID, domain.RoleOwner)
	return room, nil
}

// JoinRoom seats id as the guest. Filling the room starts the call for both members.
func (o *Orchestrator) JoinRoom(id domain.ConnID, roomID domain.RoomID) (domain.Room, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.Directory.Lookup(id); ok {
		return domain.Room{}, domain.ErrAlreadyInRoom
	}
	room, ok := o.Registry.FindByID(roomID)
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	if room.Full() {
		return domain.Room{}, domain.ErrRoomFull
	}

	room, err := o.Registry.SetParticipants(room.ID, room.ParticipantCount+1)
	if err != nil {
		return domain.Room{}, err
	}
	o.Directory.Bind(id, room.ID, domain.RoleGuest)
	log.Info().Str("module", "orch").Str("conn", string(id)).Int64("room", int64(room.ID)).Int("participants", room.ParticipantCount).Msg("joined")

	if room.Full() {
		ev := core.StartCall(room)
		for _, member := range o.Directory.MembersOf(room.ID) {
			o.deliverLocked(member, ev)
		}
	}
	return room, nil
}

// RequestNewPartner evicts the guest so the owner can wait for someone else.
// Callers other than the owner get ErrUnauthorized and nothing happens.
func (o *Orchestrator) RequestNewPartner(id domain.ConnID) (domain.Room, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	m, ok := o.Directory.Lookup(id)
	if !ok || !m.IsOwner() {
		log.Debug().Str("module", "orch").Str("conn", string(id)).Msg("new-partner from non-owner ignored")
		return domain.Room{}, domain.ErrUnauthorized
	}
	room, ok := o.Registry.FindByID(m.RoomID)
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	if !room.Full() {
		return domain.Room{}, domain.ErrRoomNotFull
	}

	for _, mate := range o.Directory.MembersOf(room.ID) {
		if mate == id {
			continue
		}
		o.Directory.Unbind(mate)
		o.deliverLocked(mate, core.RedirectHome())
	}
	room, err := o.Registry.SetParticipants(room.ID, 1)
	if err != nil {
		return domain.Room{}, err
	}
	o.deliverLocked(id, core.RedirectWaiting(room))
	log.Info().Str("module", "orch").Str("conn", string(id)).Int64("room", int64(room.ID)).Msg("partner replaced")
	return room, nil
}

// LeaveRoom is a voluntary leave of roomID. It is a no-op unless id sits there.
func (o *Orchestrator) LeaveRoom(id domain.ConnID, roomID domain.RoomID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	m, ok := o.Directory.Lookup(id)
	if !ok || m.RoomID != roomID {
		return
	}
	o.Directory.Unbind(id)

	room, ok := o.Registry.FindByID(roomID)
	if !ok {
		return
	}
	room, err := o.Registry.SetParticipants(room.ID, room.ParticipantCount-1)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Int64("room", int64(roomID)).Msg("leave: update participants")
		return
	}
	log.Info().Str("module", "orch").Str("conn", string(id)).Int64("room", int64(roomID)).Str("role", string(m.Role)).Msg("left")

	if room.ParticipantCount == 0 {
		o.Registry.Delete(room.ID)
		return
	}
	left := core.UserLeft(id)
	for _, mate := range o.Directory.MembersOf(room.ID) {
		o.deliverLocked(mate, left)
	}
	// Ownership never transfers: without its owner the room is over.
	if m.IsOwner() {
		o.closeRoomLocked(room, "owner left")
	}
}
