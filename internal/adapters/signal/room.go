package signal

import (
	"errors"

	"github.com/dkeye/disagree/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleCreateRoom(c *WsSignalConn, env inEnvelope) {
	var req createRoomRequest
	if err := ctl.decode(env.Data, &req); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("bad create-room payload")
		ctl.reply(c, env, errorResponse{Error: errorCode(err)})
		return
	}

	stance := domain.Stance{Side: req.Stance.Side, Intensity: req.Stance.Intensity}
	room, err := ctl.Orch.CreateRoom(c.id, req.Name, stance)
	if err != nil {
		ctl.reply(c, env, errorResponse{Error: errorCode(err)})
		return
	}
	ctl.reply(c, env, roomResponse{Room: room})
}

func (ctl *SignalWSController) handleJoinRoom(c *WsSignalConn, env inEnvelope) {
	var req roomRequest
	if err := ctl.decode(env.Data, &req); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("bad join-room payload")
		ctl.reply(c, env, errorResponse{Error: errorCode(err)})
		return
	}

	room, err := ctl.Orch.JoinRoom(c.id, req.RoomID)
	if err != nil {
		log.Info().Err(err).Str("module", "signal").Str("conn", string(c.id)).Int64("room", int64(req.RoomID)).Msg("join refused")
		ctl.reply(c, env, errorResponse{Error: errorCode(err)})
		return
	}
	ctl.reply(c, env, roomResponse{Room: room})
}

// handleNewPartner answers only the owner of a room; anyone else gets silence.
func (ctl *SignalWSController) handleNewPartner(c *WsSignalConn, env inEnvelope) {
	_, err := ctl.Orch.RequestNewPartner(c.id)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		log.Debug().Str("module", "signal").Str("conn", string(c.id)).Msg("new-partner ignored")
	case err != nil:
		ctl.reply(c, env, partnerResponse{Success: false, Error: errorCode(err)})
	default:
		ctl.reply(c, env, partnerResponse{Success: true})
	}
}

func (ctl *SignalWSController) handleLeaveRoom(c *WsSignalConn, env inEnvelope) {
	var req roomRequest
	if err := ctl.decode(env.Data, &req); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("bad leave-room payload")
		return
	}
	ctl.Orch.LeaveRoom(c.id, req.RoomID)
}
