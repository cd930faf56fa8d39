package signal

// Inbound message types. Anything else falls through to the ignored branch.
const (
	typeJoin    = "join"
	typeLeave   = "leave"
	typeMessage = "message"
	typePing    = "ping"
)

// envelope is the first-pass decode that picks the handler.
type envelope struct {
	Type string `json:"type"`
}

// relayEnvelope extracts the target room of an opaque relayed payload.
type relayEnvelope struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}
