package core

import (
	"encoding/json"

	"github.com/dkeye/disagree/internal/domain"
)

// Outbound event names.
const (
	EventStartCall       = "start-call"
	EventRedirectHome    = "redirect-home"
	EventRedirectWaiting = "redirect-waiting"
	EventUserLeft        = "user-left"
	EventSignal          = "signal"
	EventMessage         = "message"
	EventWelcome         = "welcome"
	EventStatsUpdate     = "stats-update"
)

type RoomPayload struct {
	Room domain.Room `json:"room"`
}

type UserLeftPayload struct {
	ConnectionID domain.ConnID `json:"connectionId"`
}

// SignalPayload carries negotiation data exactly as the sender produced it.
type SignalPayload struct {
	Sender  domain.ConnID   `json:"sender"`
	Payload json.RawMessage `json:"payload"`
}

type MessagePayload struct {
	Sender    domain.ConnID `json:"sender"`
	Text      string        `json:"text"`
	Timestamp int64         `json:"timestamp"`
}

type WelcomePayload struct {
	ConnectionID domain.ConnID `json:"connectionId"`
}

func StartCall(room domain.Room) Event {
	return Event{Type: EventStartCall, Data: RoomPayload{Room: room}}
}

func RedirectHome() Event {
	return Event{Type: EventRedirectHome}
}

func RedirectWaiting(room domain.Room) Event {
	return Event{Type: EventRedirectWaiting, Data: RoomPayload{Room: room}}
}

func UserLeft(id domain.ConnID) Event {
	return Event{Type: EventUserLeft, Data: UserLeftPayload{ConnectionID: id}}
}

func StatsUpdate(s Stats) Event {
	return Event{Type: EventStatsUpdate, Data: s}
}
