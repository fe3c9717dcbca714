package ringtext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyRing keeps scheduler tests fast: a small domain meshes quickly.
func tinyRing() RingSpec {
	return RingSpec{InnerRadius: 1.5, Thickness: 0.8, Height: 1.6, RadialSegments: minRadialSegments}
}

func tinyText(s string) TextSpec {
	return TextSpec{Text: s, FontID: "test", Size: 0.8, Depth: 0.3, Raised: true}
}

func TestSchedulerDebounceReplacesPending(t *testing.T) {
	source := newCountingSource(&blockSource{}, 'A', 'B')
	s := NewScheduler(&Generator{Source: source}, 50*time.Millisecond)
	defer s.Close()

	// Two updates inside the quiescence window: the first is replaced,
	// never queued.
	s.Update(tinyRing(), tinyText("A"))
	s.Update(tinyRing(), tinyText("AB"))
	s.Wait()

	result, err := s.Snapshot()
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "AB", result.Text.Text)
	assert.EqualValues(t, 1, source.counts['A'].Load(), "only the final request should run")
	assert.EqualValues(t, 1, source.counts['B'].Load())
}

func TestSchedulerPublishesLatest(t *testing.T) {
	s := NewScheduler(&Generator{Source: &blockSource{}}, time.Millisecond)
	defer s.Close()

	s.Update(tinyRing(), tinyText("A"))
	s.Wait()
	s.Update(tinyRing(), tinyText("B"))
	s.Wait()

	result, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "B", result.Text.Text)
}

func TestSchedulerStaleFireIsNoop(t *testing.T) {
	source := newCountingSource(&blockSource{}, 'A')
	s := NewScheduler(&Generator{Source: source}, time.Millisecond)
	defer s.Close()

	s.Update(tinyRing(), tinyText("A"))
	s.Wait()
	before := source.counts['A'].Load()

	// A timer callback for an already-replaced (or consumed) request
	// must not run a pass.
	s.fire(1)
	s.fire(99)
	assert.Equal(t, before, source.counts['A'].Load())
}

func TestSchedulerSnapshotError(t *testing.T) {
	s := NewScheduler(&Generator{Source: &blockSource{}}, time.Millisecond)
	defer s.Close()

	bad := tinyText("A")
	bad.Recessed = true
	s.Update(tinyRing(), bad)
	s.Wait()

	result, err := s.Snapshot()
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestSchedulerCloseCancelsPending(t *testing.T) {
	source := newCountingSource(&blockSource{}, 'A')
	s := NewScheduler(&Generator{Source: source}, 20*time.Millisecond)

	s.Update(tinyRing(), tinyText("A"))
	s.Close()
	time.Sleep(60 * time.Millisecond)

	assert.EqualValues(t, 0, source.counts['A'].Load())
	result, err := s.Snapshot()
	assert.Nil(t, result)
	assert.NoError(t, err)

	// Updates after Close are ignored.
	s.Update(tinyRing(), tinyText("A"))
	s.Wait()
	assert.EqualValues(t, 0, source.counts['A'].Load())
}
