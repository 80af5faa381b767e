package rtc

import (
	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

const DefaultSTUN = "stun:stun.l.google.com:19302"

// ICEServers builds the list browsers use for their peer connections.
// STUN and TURN urls are kept apart because only TURN carries credentials.
// Urls that do not parse are skipped.
func ICEServers(urls []string, username, credential string) []webrtc.ICEServer {
	var stunURLs, turnURLs []string
	for _, raw := range urls {
		uri, err := stun.ParseURI(raw)
		if err != nil {
			log.Warn().Err(err).Str("module", "rtc").Str("url", raw).Msg("skipping ice url")
			continue
		}
		switch uri.Scheme {
		case stun.SchemeTypeTURN, stun.SchemeTypeTURNS:
			turnURLs = append(turnURLs, raw)
		default:
			stunURLs = append(stunURLs, raw)
		}
	}

	var servers []webrtc.ICEServer
	if len(stunURLs) > 0 {
		servers = append(servers, webrtc.ICEServer{URLs: stunURLs})
	}
	if len(turnURLs) > 0 {
		turn := webrtc.ICEServer{
			URLs:           turnURLs,
			Username:       username,
			CredentialType: webrtc.ICECredentialTypePassword,
		}
		if credential != "" {
			turn.Credential = credential
		}
		servers = append(servers, turn)
	}
	if len(servers) == 0 {
		servers = DefaultICEServers()
	}
	return servers
}

func DefaultICEServers() []webrtc.ICEServer {
	return []webrtc.ICEServer{{URLs: []string{DefaultSTUN}}}
}

// Configuration is the browser-side RTCConfiguration equivalent.
func Configuration(servers []webrtc.ICEServer) webrtc.Configuration {
	return webrtc.Configuration{ICEServers: servers}
}
