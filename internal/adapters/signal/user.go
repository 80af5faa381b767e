package signal

func (ctl *SignalWSController) handleWhoAmI(c *WsSignalConn, env inEnvelope) {
	resp := whoamiResponse{ConnectionID: c.id}
	if m, ok := ctl.Orch.Whoami(c.id); ok {
		resp.RoomID = m.RoomID
		resp.Role = m.Role
	}
	ctl.reply(c, env, resp)
}
