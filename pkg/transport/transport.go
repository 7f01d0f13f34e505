// Package transport defines the contract every concrete bus binding
// satisfies: a send path, a listener registration path with deterministic
// exactly-once cleanup, and the implementation hooks both delegate to.
//
// A binding implements Connector; callers talk to Transport. The contract
// layer owns the listener lifecycle (Unregistered -> Registered -> Cleaned)
// and guarantees that a cleanup obligation exists iff registration
// succeeded, and fires exactly once.
package transport

import (
	"fmt"

	"uvbus/pkg/status"
	"uvbus/pkg/uri"
)

// Connector is the set of hooks a concrete binding supplies. The contract
// layer calls Send per Transport.Send, RegisterListener per successful wrap
// of a callback, and CleanupListener exactly once per released handle,
// passing the same conn that RegisterListener received.
//
// Hook statuses propagate verbatim; the contract layer never retries.
type Connector interface {
	Send(msg *Message) status.Status
	RegisterListener(sink uri.UUri, listener CallableConn, source *uri.UUri) status.Status
	CleanupListener(listener CallableConn)
}

// Transport orchestrates a Connector. Send and RegisterListener may be
// called concurrently; any cross-call ordering beyond what the hooks
// provide is the binding's concern.
type Transport struct {
	connector Connector
	source    uri.UUri
}

// New builds a transport over connector. source is the transport's own
// identity and is immutable for its lifetime.
func New(connector Connector, source uri.UUri) *Transport {
	if connector == nil {
		panic("transport: nil connector")
	}
	return &Transport{connector: connector, source: source}
}

// DefaultSource returns the identity this transport was built with.
func (t *Transport) DefaultSource() uri.UUri { return t.source }

// Send hands msg to the binding's send hook and returns its status
// unchanged. A panicking hook is reported as an internal status rather than
// propagated.
func (t *Transport) Send(msg *Message) (st status.Status) {
	defer func() {
		if r := recover(); r != nil {
			st = status.Errf(status.CodeInternal, "send hook panic: %v", r)
		}
	}()
	if msg == nil {
		return status.Errf(status.CodeInvalidArgument, "nil message")
	}
	return t.connector.Send(msg)
}

// RegisterOption adjusts a RegisterListener call.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	source *uri.UUri
}

// WithSourceFilter restricts delivery to messages from source. Without it
// the filter is sink-only; callers wanting the conventional default may pass
// the transport's own DefaultSource.
func WithSourceFilter(source uri.UUri) RegisterOption {
	return func(o *registerOptions) { o.source = &source }
}

// RegisterListener wraps callback in a CallableConn and offers it to the
// binding's register hook under the given sink filter.
//
// On a non-ok hook status the conn is invalidated, no handle exists and no
// cleanup will ever be owed. On success the returned handle owns the
// registration; releasing it invokes the cleanup hook with the registered
// conn exactly once.
func (t *Transport) RegisterListener(sink uri.UUri, callback ListenCallback, opts ...RegisterOption) (*ListenerHandle, error) {
	if callback == nil {
		return nil, status.Errf(status.CodeInvalidArgument, "nil callback")
	}
	var ro registerOptions
	for _, opt := range opts {
		opt(&ro)
	}

	conn := NewCallableConn(callback)
	st, err := t.register(sink, conn, ro.source)
	if err != nil {
		conn.invalidate()
		return nil, err
	}
	if !st.IsOK() {
		conn.invalidate()
		return nil, st
	}
	return newListenerHandle(conn, t.connector.CleanupListener), nil
}

func (t *Transport) register(sink uri.UUri, conn CallableConn, source *uri.UUri) (st status.Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transport: register hook panic: %v", r)
		}
	}()
	return t.connector.RegisterListener(sink, conn, source), nil
}
