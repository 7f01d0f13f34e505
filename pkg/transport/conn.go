package transport

import "sync"

// ListenCallback receives one inbound message.
type ListenCallback func(msg *Message)

// CallableConn is a shared handle to a registered callback. Copies of one
// conn share the callback through a common state block, so equality between
// copies is identity of the registration, not of the copy: two conns compare
// equal iff they wrap the same underlying callback instance, and CallableConn
// values are directly comparable with ==.
//
// A conn whose callback has been released is invalid; invoking it is a no-op.
// The zero value is invalid.
type CallableConn struct {
	s *connState
}

type connState struct {
	mu sync.RWMutex
	fn ListenCallback
}

// NewCallableConn wraps fn in a conn. The callback stays live until the conn
// is invalidated by listener cleanup.
func NewCallableConn(fn ListenCallback) CallableConn {
	if fn == nil {
		return CallableConn{}
	}
	return CallableConn{s: &connState{fn: fn}}
}

// Valid reports whether the wrapped callback is still live.
func (c CallableConn) Valid() bool {
	if c.s == nil {
		return false
	}
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return c.s.fn != nil
}

// Equal reports whether both conns stem from the same registration.
func (c CallableConn) Equal(o CallableConn) bool { return c.s == o.s }

// Invoke dispatches msg to the callback. Invoking an invalidated conn does
// nothing. The callback runs under the conn's read lock, so invalidation
// blocks until every in-flight invocation has returned; for the same reason
// a callback must not release its own listener handle from inside Invoke.
func (c CallableConn) Invoke(msg *Message) {
	if c.s == nil {
		return
	}
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	if c.s.fn == nil {
		return
	}
	c.s.fn(msg)
}

// invalidate severs the callback. Returns only after in-flight invocations
// have completed. Safe to call more than once.
func (c CallableConn) invalidate() {
	if c.s == nil {
		return
	}
	c.s.mu.Lock()
	c.s.fn = nil
	c.s.mu.Unlock()
}
