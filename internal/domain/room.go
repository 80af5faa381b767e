package domain

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Capacity is fixed: a debate is always between two people.
const Capacity = 2

const (
	MinIntensity   = 1
	MaxIntensity   = 100
	MaxRoomNameLen = 120
)

type RoomID int64

type Side string

const (
	SideLeft  Side = "Left"
	SideRight Side = "Right"
)

func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}

type RoomState string

const (
	// RoomForming: the owner waits for a partner.
	RoomForming RoomState = "forming"
	// RoomActive: both seats are taken and the call is running.
	RoomActive RoomState = "active"
)

// Stance is the owner's position on the topic. Immutable after creation.
type Stance struct {
	Side      Side `json:"side"`
	Intensity int  `json:"intensity"`
}

func (s Stance) Validate() error {
	if !s.Side.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidInput, ErrInvalidSide, s.Side)
	}
	if s.Intensity < MinIntensity || s.Intensity > MaxIntensity {
		return fmt.Errorf("%w: %w: %d", ErrInvalidInput, ErrIntensityRange, s.Intensity)
	}
	return nil
}

func ValidateRoomName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrNameEmpty)
	}
	if utf8.RuneCountInString(name) > MaxRoomNameLen {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrNameTooLong)
	}
	return nil
}

// Room is a value snapshot. The registry owns the live copy and hands out copies,
// so a descriptor sent to a client never changes under it.
type Room struct {
	ID               RoomID    `json:"id"`
	Name             string    `json:"name"`
	Stance           Stance    `json:"stance"`
	ParticipantCount int       `json:"participantCount"`
	Capacity         int       `json:"capacity"`
	State            RoomState `json:"state"`
	CreatedAt        time.Time `json:"createdAt"`
	WaitingSince     time.Time `json:"waitingSince"`
	Owner            ConnID    `json:"ownerConnectionId"`
}

// NewRoom validates the creation input and returns a forming room holding its owner.
func NewRoom(id RoomID, name string, stance Stance, owner ConnID, now time.Time) (Room, error) {
	if err := ValidateRoomName(name); err != nil {
		return Room{}, err
	}
	if err := stance.Validate(); err != nil {
		return Room{}, err
	}
	if owner == "" {
		return Room{}, fmt.Errorf("%w: missing owner connection", ErrInvalidInput)
	}
	return Room{
		ID:               id,
		Name:             name,
		Stance:           stance,
		ParticipantCount: 1,
		Capacity:         Capacity,
		State:            RoomForming,
		CreatedAt:        now,
		WaitingSince:     now,
		Owner:            owner,
	}, nil
}

func (r Room) Full() bool { return r.ParticipantCount >= r.Capacity }
