package livehub

import "askmego/backend/internal/models"

// Client is one live subscription to a request thread. It abstracts the
// underlying connection so the hub can manage every watcher uniformly.
type Client interface {
	// GetID returns the unique identifier of this subscription.
	GetID() string
	// GetRequestID returns the request thread the client is watching.
	GetRequestID() uint

	// GetSendChannel returns the channel the hub pushes thread events into.
	GetSendChannel() chan<- models.ThreadEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts the client down and releases its send channel.
	Close()
}
