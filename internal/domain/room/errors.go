package room

import "errors"

var (
	// ErrRoomNotFound indicates the room doesn't exist in the property.
	ErrRoomNotFound = errors.New("room not found")
	// ErrNoBedsAvailable indicates every bed in the room is occupied.
	ErrNoBedsAvailable = errors.New("no available beds in room")
	// ErrInvalidInput indicates invalid room input.
	ErrInvalidInput = errors.New("invalid room input")
)
