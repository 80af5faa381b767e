package domain

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrRoomNotFull   = errors.New("room is not full")
	ErrUnauthorized  = errors.New("not the room owner")
	ErrAlreadyInRoom = errors.New("connection already in a room")
)

var (
	ErrNameEmpty      = errors.New("room name empty")
	ErrNameTooLong    = errors.New("room name too long")
	ErrInvalidSide    = errors.New("stance side must be Left or Right")
	ErrIntensityRange = errors.New("stance intensity out of range")
)
