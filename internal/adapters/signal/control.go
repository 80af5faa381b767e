package signal

func (ctl *SignalWSController) handlePing(c *WsSignalConn, env inEnvelope) {
	ctl.sendJSON(c, outEnvelope{Type: typePong, Ref: env.Ref})
}
