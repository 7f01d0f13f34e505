package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Generator mints time-ordered UUIDs from a time source, a random source and
// a per-generator (timestamp, counter) state.
//
// Two kinds exist. The process-wide generator returned by Default shares one
// state among all its callers under a lock, so concurrent senders observe a
// single consistent counter sequence; its sources cannot be replaced.
// Test generators from NewForTest own private state and accept injected
// sources for deterministic output; concurrent use of one test generator
// from several goroutines is not serialized beyond the state lock, so
// interleaved sequences are the caller's to manage.
type Generator struct {
	testing bool

	timeSource   func() time.Time
	randomSource func() uint64

	st *generatorState
}

type generatorState struct {
	mu      sync.Mutex
	lastMs  int64
	counter uint16
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

// Default returns the shared production generator. Every caller of Default
// observes the same monotonic (timestamp, counter) sequence.
func Default() *Generator {
	defaultOnce.Do(func() {
		defaultGen = &Generator{st: &generatorState{}}
	})
	return defaultGen
}

// NewForTest returns a generator with private state whose time and random
// sources may be injected for deterministic tests.
func NewForTest() *Generator {
	return &Generator{testing: true, st: &generatorState{}}
}

// WithTimeSource injects a time source. Panics when called on a production
// generator: replacing the shared clock would break the monotonicity other
// callers rely on.
func (g *Generator) WithTimeSource(src func() time.Time) *Generator {
	if !g.testing {
		panic("uuid: cannot set time source on a production generator")
	}
	g.timeSource = src
	return g
}

// WithRandomSource injects a random source. Panics on a production generator.
func (g *Generator) WithRandomSource(src func() uint64) *Generator {
	if !g.testing {
		panic("uuid: cannot set random source on a production generator")
	}
	g.randomSource = src
	return g
}

// WithIndependentState discards the generator's state in favor of a fresh
// one, isolating its counter sequence from any previously handed-out copy.
// Panics on a production generator.
func (g *Generator) WithIndependentState() *Generator {
	if !g.testing {
		panic("uuid: cannot set independent state on a production generator")
	}
	g.st = &generatorState{}
	return g
}

// Build mints the next identifier.
//
// Within one millisecond tick the counter advances by one per call and
// saturates at MaxCounter rather than wrapping into the timestamp bits.
// A tick change resets the counter to zero.
func (g *Generator) Build() UUID {
	g.st.mu.Lock()
	defer g.st.mu.Unlock()

	nowMs := g.now().UnixMilli()
	random := g.random()

	if nowMs == g.st.lastMs {
		if g.st.counter < MaxCounter {
			g.st.counter++
		}
	} else {
		g.st.counter = 0
		g.st.lastMs = nowMs
	}

	msb := uint64(nowMs)<<TimestampShift | Version8<<VersionShift | uint64(g.st.counter)
	lsb := VariantRFC4122<<VariantShift | random&RandomMask
	return UUID{MSB: msb, LSB: lsb}
}

func (g *Generator) now() time.Time {
	if g.timeSource != nil {
		return g.timeSource()
	}
	return time.Now()
}

func (g *Generator) random() uint64 {
	if g.randomSource != nil {
		return g.randomSource()
	}
	var b [8]byte
	// crypto/rand.Read does not fail on supported platforms
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
