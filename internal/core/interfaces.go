package core

import "github.com/dkeye/disagree/internal/domain"

// Frame is a raw encoded payload ready for the wire.
type Frame []byte

// Event is an outbound notification addressed to one connection.
// Data is encoded by the transport; the core never serializes.
type Event struct {
	Type string
	Data any
}

// SignalConnection abstracts a live messaging transport endpoint.
// Owned by the adapter; the adapter must Close() it.
// Send must not block: a full buffer is reported as an error.
type SignalConnection interface {
	ID() domain.ConnID
	Send(Event) error
	Close()
}

// Stats is a read-only aggregate view over the registry and the directory.
type Stats struct {
	UsersOnline   int `json:"usersOnline"`
	ActiveDebates int `json:"activeDebates"`
	DebatesToday  int `json:"debatesToday"`
}
