package app

import (
	"github.com/dkeye/disagree/internal/core"
	"github.com/dkeye/disagree/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickMember
	DropFrame
)

// Policy decides what happens when an event cannot be queued for a connection.
type Policy interface {
	OnBackPressure(to domain.ConnID, ev core.Event) BackpressureAction
}

// SimplePolicy drops stats refreshes, which the next update supersedes, and closes
// the connection for anything else: a peer that misses a room event is out of sync.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(_ domain.ConnID, ev core.Event) BackpressureAction {
	if ev.Type == core.EventStatsUpdate {
		return DropFrame
	}
	return KickMember
}
