package orch

import (
	"context"
	"time"

	"github.com/dkeye/disagree/internal/domain"
	"github.com/rs/zerolog/log"
)

// ExpireForming closes rooms that have waited longer than FormingTTL for a partner.
// Active rooms are never touched.
func (o *Orchestrator) ExpireForming(now time.Time) []domain.RoomID {
	if o.FormingTTL <= 0 {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	var expired []domain.RoomID
	for _, room := range o.Registry.List() {
		if room.State != domain.RoomForming || now.Sub(room.WaitingSince) < o.FormingTTL {
			continue
		}
		o.closeRoomLocked(room, "forming ttl")
		expired = append(expired, room.ID)
	}
	return expired
}

// Run sweeps forming rooms every interval until ctx is done.
func (o *Orchestrator) Run(ctx context.Context, interval time.Duration) {
	if o.FormingTTL <= 0 || interval <= 0 {
		log.Info().Str("module", "orch").Msg("forming expiry disabled")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ids := o.ExpireForming(o.now()); len(ids) > 0 {
				log.Info().Str("module", "orch").Int("rooms", len(ids)).Msg("expired forming rooms")
			}
		}
	}
}
