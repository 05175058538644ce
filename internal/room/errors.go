package room

import "errors"

// ErrNoRoom is returned when a read is requested while no room code is set.
var ErrNoRoom = errors.New("no room code set")
