// Package mock provides the transport test double used to exercise the
// contract layer without a real binding. It records every hook call and its
// parameters, lets a test pre-set the status returned by the next send or
// register call, and can inject inbound messages into the last registered
// listener.
//
// The double is not synchronized; drive it from one goroutine per test.
package mock

import (
	"uvbus/pkg/status"
	"uvbus/pkg/transport"
	"uvbus/pkg/uri"
)

// Connector implements transport.Connector with full call recording.
type Connector struct {
	// Pre-set status for the next Send / RegisterListener hook call.
	// Consumed (reset to nil) after one use; nil means ok.
	NextSendStatus     *status.Status
	NextRegisterStatus *status.Status

	// Send hook recording.
	SendCount       int
	LastSentMessage *transport.Message

	// Register hook recording.
	RegisterCount    int
	LastListener     transport.CallableConn
	LastSinkFilter   uri.UUri
	LastSourceFilter *uri.UUri

	// Cleanup hook recording.
	CleanupCount        int
	LastCleanupListener transport.CallableConn
}

// NewConnector returns an empty recording double.
func NewConnector() *Connector { return &Connector{} }

// NewTransport wires a fresh double into a contract-layer transport with the
// given identity and returns both.
func NewTransport(source uri.UUri) (*transport.Transport, *Connector) {
	c := NewConnector()
	return transport.New(c, source), c
}

func (c *Connector) Send(msg *transport.Message) status.Status {
	c.SendCount++
	c.LastSentMessage = msg

	if c.NextSendStatus != nil {
		st := *c.NextSendStatus
		c.NextSendStatus = nil
		return st
	}
	return status.OK()
}

func (c *Connector) RegisterListener(sink uri.UUri, listener transport.CallableConn, source *uri.UUri) status.Status {
	c.RegisterCount++
	c.LastListener = listener
	c.LastSinkFilter = sink
	c.LastSourceFilter = source

	if c.NextRegisterStatus != nil {
		st := *c.NextRegisterStatus
		c.NextRegisterStatus = nil
		return st
	}
	return status.OK()
}

func (c *Connector) CleanupListener(listener transport.CallableConn) {
	c.CleanupCount++
	c.LastCleanupListener = listener
}

// Inject delivers msg to the last registered listener, mimicking an inbound
// message from the medium. Injection into an invalidated listener is a no-op,
// as it is for a real binding after cleanup.
func (c *Connector) Inject(msg *transport.Message) {
	c.LastListener.Invoke(msg)
}
