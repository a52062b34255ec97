package hub

// Session is the transport-owned handle for one open duplex channel.
// The hub holds non-owning references only; the transport layer creates
// the session on upgrade and invalidates it on close or error.
type Session interface {
	// ID is the process-unique session identifier.
	ID() string
	// RemoteAddr is the peer-address key the session identifies as.
	RemoteAddr() string
	// Path is the request path negotiated at handshake time.
	Path() string
	// IsOpen reports whether the channel still accepts writes.
	IsOpen() bool
	// SendText writes one text payload; it may fail with an I/O error
	// but never blocks past the transport's write deadline.
	SendText(payload string) error
	// Close shuts the channel down with the given status code.
	Close(code int) error
}
