// Package domain contains entities without logic, just meta-data.
package domain

type (
	// UserID is the client-chosen identity inside a room.
	UserID string
	// RoomID names a room. Rooms come into existence on first join.
	RoomID string
	// ConnID identifies one live transport connection. Opaque to the core;
	// the transport adapter mints it.
	ConnID string
)
