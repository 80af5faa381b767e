package signal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dkeye/disagree/internal/domain"
)

// Inbound event names. Responses reuse the request's name.
const (
	typeCreateRoom = "create-room"
	typeJoinRoom   = "join-room"
	typeNewPartner = "new-partner"
	typeLeaveRoom  = "leave-room"
	typeSignal     = "signal"
	typeMessage    = "message"
	typePing       = "ping"
	typePong       = "pong"
	typeWhoami     = "whoami"
	typeError      = "error"
)

// Wire error codes.
const (
	codeBadPayload    = "bad_payload"
	codeUnknownEvent  = "unknown_event"
	codeInvalidInput  = "invalid_input"
	codeRoomNotFound  = "room_not_found"
	codeRoomFull      = "room_full"
	codeRoomNotFull   = "room_not_full"
	codeAlreadyInRoom = "already_in_room"
	codeInternal      = "internal"
)

var errBadPayload = errors.New("bad payload")

// inEnvelope wraps every client frame.
type inEnvelope struct {
	Type string          `json:"type"`
	Ref  string          `json:"ref,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outEnvelope struct {
	Type string `json:"type"`
	Ref  string `json:"ref,omitempty"`
	Data any    `json:"data,omitempty"`
}

type createRoomRequest struct {
	Name   string         `json:"name"   validate:"required,max=120"`
	Stance *stanceRequest `json:"stance" validate:"required"`
}

type stanceRequest struct {
	Side      domain.Side `json:"side"      validate:"required,oneof=Left Right"`
	Intensity int         `json:"intensity" validate:"required,min=1,max=100"`
}

type roomRequest struct {
	RoomID domain.RoomID `json:"roomId" validate:"required,gt=0"`
}

// UnmarshalJSON accepts the id bare or wrapped as {"roomId": n}.
func (r *roomRequest) UnmarshalJSON(b []byte) error {
	var id domain.RoomID
	if err := json.Unmarshal(b, &id); err == nil {
		r.RoomID = id
		return nil
	}
	type plain roomRequest
	return json.Unmarshal(b, (*plain)(r))
}

type signalRequest struct {
	Target  domain.ConnID   `json:"target"  validate:"required"`
	Payload json.RawMessage `json:"payload" validate:"required"`
}

type messageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type roomResponse struct {
	Room domain.Room `json:"room"`
}

type partnerResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type whoamiResponse struct {
	ConnectionID domain.ConnID `json:"connectionId"`
	RoomID       domain.RoomID `json:"roomId,omitempty"`
	Role         domain.Role   `json:"role,omitempty"`
}

// decode parses and validates a request body. Syntax errors wrap errBadPayload,
// failed field checks wrap domain.ErrInvalidInput.
func (ctl *SignalWSController) decode(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %w", errBadPayload, err)
	}
	if err := ctl.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return nil
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, errBadPayload):
		return codeBadPayload
	case errors.Is(err, domain.ErrInvalidInput):
		return codeInvalidInput
	case errors.Is(err, domain.ErrRoomNotFound):
		return codeRoomNotFound
	case errors.Is(err, domain.ErrRoomFull):
		return codeRoomFull
	case errors.Is(err, domain.ErrRoomNotFull):
		return codeRoomNotFull
	case errors.Is(err, domain.ErrAlreadyInRoom):
		return codeAlreadyInRoom
	default:
		return codeInternal
	}
}
