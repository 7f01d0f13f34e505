package uuid

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedTime(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func countingRandom() func() uint64 {
	var n uint64
	return func() uint64 { n++; return n }
}

func TestBuildEmbedsTimestamp(t *testing.T) {
	const ms = int64(1234567890123)
	gen := NewForTest().WithTimeSource(fixedTime(ms))

	id := gen.Build()
	require.Equal(t, uint64(ms), id.MSB>>TimestampShift)
	require.Equal(t, time.UnixMilli(ms), id.Time())
}

func TestBuildEmbedsRandom(t *testing.T) {
	const fixed = uint64(0x1234567890ABCDEF)
	gen := NewForTest().WithRandomSource(func() uint64 { return fixed })

	id := gen.Build()
	require.Equal(t, fixed&RandomMask, id.LSB&RandomMask)
}

func TestVersionAndVariant(t *testing.T) {
	id := Default().Build()
	assert.Equal(t, uint8(8), id.Version())
	assert.Equal(t, uint8(0b10), id.Variant())
}

func TestCounterIncrementsWithinTick(t *testing.T) {
	gen := NewForTest().WithTimeSource(fixedTime(1000)).WithRandomSource(countingRandom())

	for i := 0; i < 100; i++ {
		id := gen.Build()
		require.Equal(t, uint16(i), id.Counter())
	}
}

func TestCounterResetsOnTickChange(t *testing.T) {
	ms := int64(1000)
	gen := NewForTest().
		WithTimeSource(func() time.Time { return time.UnixMilli(ms) }).
		WithRandomSource(countingRandom())

	gen.Build()
	gen.Build()
	id := gen.Build()
	require.Equal(t, uint16(2), id.Counter())

	ms++
	id = gen.Build()
	require.Equal(t, uint16(0), id.Counter())
	require.Equal(t, uint64(ms), id.MSB>>TimestampShift)
}

func TestCounterFreezesAtMax(t *testing.T) {
	gen := NewForTest().WithTimeSource(fixedTime(1234567890123)).WithRandomSource(countingRandom())

	var id UUID
	for i := 0; i < 4096; i++ {
		id = gen.Build()
	}
	require.Equal(t, MaxCounter, id.Counter(), "4096th identifier")

	// one more within the same tick stays frozen, never wraps
	id = gen.Build()
	require.Equal(t, MaxCounter, id.Counter(), "4097th identifier")
}

func TestIndependentGeneratorsAreIsolated(t *testing.T) {
	gen1 := NewForTest().WithIndependentState().WithTimeSource(fixedTime(5000))
	gen2 := NewForTest().WithIndependentState().WithTimeSource(fixedTime(5000))

	// advance gen1 well past gen2
	for i := 0; i < 10; i++ {
		gen1.Build()
	}
	id1 := gen1.Build()
	id2 := gen2.Build()

	assert.Equal(t, uint16(10), id1.Counter())
	assert.Equal(t, uint16(0), id2.Counter())
	// random halves come from separate crypto reads
	assert.NotEqual(t, id1.LSB&RandomMask, id2.LSB&RandomMask)
}

func TestOrderingAcrossBuilds(t *testing.T) {
	gen := NewForTest()
	prev := gen.Build()
	for i := 0; i < 1000; i++ {
		id := gen.Build()
		require.GreaterOrEqual(t, id.MSB, prev.MSB)
		prev = id
	}
}

func TestProductionGeneratorRejectsOverrides(t *testing.T) {
	gen := Default()

	require.Panics(t, func() { gen.WithTimeSource(time.Now) })
	require.Panics(t, func() { gen.WithRandomSource(func() uint64 { return 0 }) })
	require.Panics(t, func() { gen.WithIndependentState() })
}

func TestDefaultGeneratorIsShared(t *testing.T) {
	require.Same(t, Default(), Default())
}

func TestConcurrentBuildsKeepInvariants(t *testing.T) {
	gen := Default()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prev := gen.Build()
			for i := 0; i < 500; i++ {
				id := gen.Build()
				if id.Version() != 8 || id.Counter() > uint16(CounterMask) {
					t.Errorf("corrupt identifier %v", id)
					return
				}
				if id.MSB>>TimestampShift < prev.MSB>>TimestampShift {
					t.Errorf("timestamp went backwards: %v -> %v", prev, id)
					return
				}
				prev = id
			}
		}()
	}
	wg.Wait()
}

func TestStringParseRoundtrip(t *testing.T) {
	id := NewForTest().
		WithTimeSource(fixedTime(1234567890123)).
		WithRandomSource(func() uint64 { return 0x0BADC0FFEE }).
		Build()

	s := id.String()
	require.Len(t, s, 36)

	back, err := Parse(s)
	require.NoError(t, err)
	require.Equal(t, id, back)

	_, err = Parse("not-a-uuid")
	require.Error(t, err)
}
