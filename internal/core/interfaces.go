package core

import "errors"

// Frame is a serialized outbound message.
type Frame []byte

var (
	// ErrBackpressure is returned by TrySend when the peer's outbound
	// buffer is full.
	ErrBackpressure = errors.New("backpressure")
	// ErrConnClosed is returned by TrySend after the connection closed.
	ErrConnClosed = errors.New("connection closed")
)

// SignalConnection abstracts one peer's outbound signaling endpoint.
// TrySend must never block; it hands the frame to a buffered channel or
// fails immediately. Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
