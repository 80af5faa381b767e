package orch

import (
	"encoding/json"

	"github.com/dkeye/disagree/internal/core"
	"github.com/dkeye/disagree/internal/domain"
	"github.com/rs/zerolog/log"
)

// Signal relays opaque negotiation data to target, unicast. It only links the two
// members of one room; anything else is dropped without telling the sender.
func (o *Orchestrator) Signal(sender, target domain.ConnID, payload json.RawMessage) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if sender == target || !o.Directory.Live(target) {
		log.Debug().Str("module", "orch.signal").Str("sender", string(sender)).Str("target", string(target)).Msg("target not addressable")
		return
	}
	from, ok := o.Directory.Lookup(sender)
	if !ok {
		return
	}
	to, ok := o.Directory.Lookup(target)
	if !ok || to.RoomID != from.RoomID {
		log.Debug().Str("module", "orch.signal").Str("sender", string(sender)).Str("target", string(target)).Msg("target outside sender's room")
		return
	}
	o.deliverLocked(target, core.Event{
		Type: core.EventSignal,
		Data: core.SignalPayload{Sender: sender, Payload: payload},
	})
}

// Message relays a text chat line to the sender's room mates.
func (o *Orchestrator) Message(sender domain.ConnID, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	mates := o.Directory.RoomMates(sender)
	if len(mates) == 0 {
		return
	}
	ev := core.Event{
		Type: core.EventMessage,
		Data: core.MessagePayload{Sender: sender, Text: text, Timestamp: o.now().UnixMilli()},
	}
	for _, mate := range mates {
		o.deliverLocked(mate, ev)
	}
}
