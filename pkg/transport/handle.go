package transport

import "sync/atomic"

// ListenerHandle owns one successful listener registration. Releasing the
// handle (or letting Release run via defer) unregisters the callback from
// the transport exactly once; further Release calls are no-ops.
//
// Handles are single-owner values: share the pointer, never copy the struct.
// Go has no destructors, so a handle that is dropped without Release leaves
// the listener registered until the transport itself goes away. Release is
// the severing point and must be called.
type ListenerHandle struct {
	conn     CallableConn
	cleanup  func(CallableConn)
	released atomic.Bool
}

func newListenerHandle(conn CallableConn, cleanup func(CallableConn)) *ListenerHandle {
	return &ListenerHandle{conn: conn, cleanup: cleanup}
}

// Release unregisters the listener. The first call hands the registered conn
// to the transport's cleanup hook and then invalidates it, waiting out any
// in-flight dispatch to this listener. Subsequent calls, and calls on a nil
// handle, do nothing.
func (h *ListenerHandle) Release() {
	if h == nil || !h.released.CompareAndSwap(false, true) {
		return
	}
	if h.cleanup != nil {
		h.cleanup(h.conn)
	}
	h.conn.invalidate()
}

// Valid reports whether the handle still owns a live registration.
func (h *ListenerHandle) Valid() bool {
	return h != nil && !h.released.Load() && h.conn.Valid()
}
