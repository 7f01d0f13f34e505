// Package loopback is an in-process bus binding. Messages sent on any
// attached transport are queued and dispatched to every listener whose
// filters match, all within one process. It backs the demo binary and
// integration-style tests; it defines no wire format.
package loopback

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"uvbus/pkg/status"
	"uvbus/pkg/transport"
	"uvbus/pkg/uri"
	"uvbus/pkg/utils"
)

const (
	defaultQueueSize  = 256
	defaultPopTimeout = 50 * time.Millisecond
)

type registration struct {
	sink   uri.UUri
	source *uri.UUri
	conn   transport.CallableConn
}

// Bus is the shared in-process medium. Transports attach to it; one dispatch
// goroutine drains the delivery queue until Close.
type Bus struct {
	listeners *utils.SafeMap[transport.CallableConn, *registration]
	queue     *utils.CyclicQueue[*transport.Message]
	log       *zap.Logger

	closed atomic.Bool
	stop   chan struct{}
	wg     sync.WaitGroup
}

// Option adjusts a Bus.
type Option func(*Bus)

// WithQueueSize bounds the delivery queue.
func WithQueueSize(n int) Option {
	return func(b *Bus) { b.queue = utils.NewCyclicQueue[*transport.Message](n, defaultPopTimeout) }
}

// WithLogger replaces the global zap logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Bus) { b.log = log }
}

// NewBus starts an empty bus and its dispatch goroutine.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		listeners: utils.NewSafeMap[transport.CallableConn, *registration](),
		queue:     utils.NewCyclicQueue[*transport.Message](defaultQueueSize, defaultPopTimeout),
		log:       zap.L(),
		stop:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.wg.Add(1)
	go b.dispatch()
	return b
}

// Close stops dispatch. Queued but undelivered messages are dropped.
func (b *Bus) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	close(b.stop)
	b.wg.Wait()
}

// Attach returns a transport with the given identity bound to this bus.
func (b *Bus) Attach(source uri.UUri) *transport.Transport {
	return transport.New(&connector{bus: b}, source)
}

func (b *Bus) dispatch() {
	defer b.wg.Done()
	for {
		select {
		case <-b.stop:
			return
		default:
		}
		msg, ok := b.queue.WaitPop()
		if !ok {
			continue
		}
		b.deliver(msg)
	}
}

func (b *Bus) deliver(msg *transport.Message) {
	matched := 0
	b.listeners.Range(func(_ transport.CallableConn, reg *registration) bool {
		if !msg.Attributes.Sink.Matches(reg.sink) {
			return true
		}
		if reg.source != nil && !msg.Attributes.Source.Matches(*reg.source) {
			return true
		}
		reg.conn.Invoke(msg)
		matched++
		return true
	})
	if matched == 0 {
		b.log.Debug("loopback: no listener matched",
			zap.Stringer("sink", msg.Attributes.Sink),
			zap.Stringer("id", msg.Attributes.ID))
	}
}

// connector implements the transport hooks against the shared bus.
type connector struct {
	bus *Bus
}

func (c *connector) Send(msg *transport.Message) status.Status {
	if c.bus.closed.Load() {
		return status.Errf(status.CodeUnavailable, "loopback bus closed")
	}
	if !c.bus.queue.Push(msg) {
		return status.Errf(status.CodeResourceExhausted, "loopback queue full")
	}
	return status.OK()
}

func (c *connector) RegisterListener(sink uri.UUri, listener transport.CallableConn, source *uri.UUri) status.Status {
	if c.bus.closed.Load() {
		return status.Errf(status.CodeUnavailable, "loopback bus closed")
	}
	if !c.bus.listeners.SetIfAbsent(listener, &registration{sink: sink, source: source, conn: listener}) {
		return status.Errf(status.CodeAlreadyExists, "listener already registered")
	}
	c.bus.log.Debug("loopback: listener registered", zap.Stringer("sink", sink))
	return status.OK()
}

func (c *connector) CleanupListener(listener transport.CallableConn) {
	if c.bus.listeners.Delete(listener) {
		c.bus.log.Debug("loopback: listener cleaned up")
	}
}
