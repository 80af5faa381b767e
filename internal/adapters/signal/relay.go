package signal

import "github.com/rs/zerolog/log"

// handleRelay forwards an opaque WebRTC payload to the sender's partner.
func (ctl *SignalWSController) handleRelay(c *WsSignalConn, env inEnvelope) {
	var req signalRequest
	if err := ctl.decode(env.Data, &req); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("bad signal payload")
		return
	}
	ctl.Orch.Signal(c.id, req.Target, req.Payload)
}

func (ctl *SignalWSController) handleMessage(c *WsSignalConn, env inEnvelope) {
	var req messageRequest
	if err := ctl.decode(env.Data, &req); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("bad message payload")
		return
	}
	ctl.Orch.Message(c.id, req.Text)
}
