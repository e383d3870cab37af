package typewriter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaya/internal/testutils"
)

func newManualWriter(chunk int, opts ...Option) (*Writer, *testutils.RecordingSink, *testutils.ManualScheduler) {
	sink := testutils.NewRecordingSink()
	sched := testutils.NewManualScheduler()
	opts = append([]Option{WithScheduler(sched), WithChunkSize(chunk)}, opts...)
	return New(sink, opts...), sink, sched
}

func TestWriter_FIFO(t *testing.T) {
	w, sink, sched := newManualWriter(1)

	w.Enqueue("AB")
	w.Enqueue("CD")
	assert.Equal(t, Running, w.State())
	assert.Equal(t, 1, w.Pending())

	sched.RunUntilIdle(100)

	assert.Equal(t, "ABCD", sink.String())
	assert.Equal(t, []string{"A", "B", "C", "D"}, sink.Chunks())
	assert.Equal(t, Idle, w.State())
	assert.Equal(t, 0, w.Pending())
}

func TestWriter_ChunkSize(t *testing.T) {
	w, sink, sched := newManualWriter(2)

	w.Enqueue("hello")
	sched.RunUntilIdle(100)

	assert.Equal(t, []string{"he", "ll", "o"}, sink.Chunks())
}

func TestWriter_EnqueueWhileRunningWaits(t *testing.T) {
	w, sink, sched := newManualWriter(2)

	w.Enqueue("abcd")
	require.True(t, sched.Fire())
	w.Enqueue("XY")
	assert.Equal(t, "ab", sink.String())

	sched.RunUntilIdle(100)
	assert.Equal(t, "abcdXY", sink.String())
	assert.Equal(t, 1, sched.Starts())
}

func TestWriter_SkipBeforeFirstTick(t *testing.T) {
	finished := 0
	w, sink, sched := newManualWriter(2, OnFinished(func() { finished++ }))

	w.Enqueue("AB")
	w.Skip()

	assert.Equal(t, "AB", sink.String())
	assert.Equal(t, Idle, w.State())
	assert.Equal(t, 1, finished)
	assert.False(t, sched.Active())
	assert.False(t, sched.Fire(), "pending tick must be cancelled")
}

func TestWriter_SkipIsIdempotentWhenIdle(t *testing.T) {
	finished := 0
	w, sink, _ := newManualWriter(2, OnFinished(func() { finished++ }))

	w.Skip()
	assert.Equal(t, 0, finished)

	w.Enqueue("x")
	w.Skip()
	w.Skip()
	assert.Equal(t, 1, finished)
	assert.Equal(t, "x", sink.String())
}

func TestWriter_SkipMidStringFlushesEverythingInOrder(t *testing.T) {
	w, sink, sched := newManualWriter(2)

	w.Enqueue("hello")
	w.Enqueue("")
	w.Enqueue(" world")
	require.True(t, sched.Fire())
	assert.Equal(t, "he", sink.String())

	w.Skip()

	assert.Equal(t, "hello world", sink.String())
	assert.Equal(t, []string{"he", "llo", " world"}, sink.Chunks())
	assert.Equal(t, 0, w.Pending())
}

func TestWriter_CompletionSignaledOncePerRun(t *testing.T) {
	finished := 0
	w, _, sched := newManualWriter(4, OnFinished(func() { finished++ }))

	w.Enqueue("one")
	w.Enqueue("two")
	sched.RunUntilIdle(100)
	assert.Equal(t, 1, finished)

	w.Enqueue("three")
	sched.RunUntilIdle(100)
	assert.Equal(t, 2, finished)
}

func TestWriter_EmptyStringIsConsumed(t *testing.T) {
	w, sink, sched := newManualWriter(2)

	w.Enqueue("")
	assert.Equal(t, Running, w.State())

	assert.Equal(t, 1, sched.RunUntilIdle(100))
	assert.Equal(t, "", sink.String())
	assert.Equal(t, Idle, w.State())
}

func TestWriter_GraphemeClustersStayWhole(t *testing.T) {
	w, sink, sched := newManualWriter(1)

	// e + combining acute, then a flag made of two regional indicators
	w.Enqueue("e\u0301\U0001F1F9\U0001F1F7\u015f")
	sched.RunUntilIdle(100)

	assert.Equal(t, []string{"e\u0301", "\U0001F1F9\U0001F1F7", "\u015f"}, sink.Chunks())
}

func TestWriter_IdleChannel(t *testing.T) {
	w, _, sched := newManualWriter(8)

	select {
	case <-w.Idle():
	default:
		t.Fatal("new writer must report idle")
	}

	w.Enqueue("text")
	idle := w.Idle()
	select {
	case <-idle:
		t.Fatal("running writer must not report idle")
	default:
	}

	sched.RunUntilIdle(100)
	select {
	case <-idle:
	default:
		t.Fatal("idle channel must close when the run completes")
	}
}

func TestWriter_FinishedCallbackMayEnqueue(t *testing.T) {
	var w *Writer
	sink := testutils.NewRecordingSink()
	sched := testutils.NewManualScheduler()
	once := false
	w = New(sink, WithScheduler(sched), WithChunkSize(8), OnFinished(func() {
		if !once {
			once = true
			w.Enqueue("second")
		}
	}))

	w.Enqueue("first ")
	sched.RunUntilIdle(100)

	assert.Equal(t, "first second", sink.String())
	assert.Equal(t, Idle, w.State())
}

func TestWriter_SchedulerBookkeeping(t *testing.T) {
	w, _, sched := newManualWriter(8, WithInterval(30*time.Millisecond))

	assert.Equal(t, 0, sched.Starts())
	w.Enqueue("abc")
	assert.Equal(t, 1, sched.Starts())
	assert.Equal(t, 30*time.Millisecond, sched.Interval())

	sched.RunUntilIdle(100)
	assert.Equal(t, 1, sched.Stops())
	assert.False(t, sched.Active())
}

func TestWriter_OptionClamping(t *testing.T) {
	w := New(testutils.NewRecordingSink(), WithInterval(0), WithChunkSize(-3), WithScheduler(testutils.NewManualScheduler()))

	assert.Equal(t, time.Millisecond, w.Interval())
	assert.Equal(t, 1, w.chunk)
}

func TestWriter_TickWhileIdleIgnored(t *testing.T) {
	w, sink, _ := newManualWriter(2)

	assert.NotPanics(t, w.Tick)
	assert.Equal(t, "", sink.String())
	assert.Equal(t, Idle, w.State())
}

func TestSinkFunc(t *testing.T) {
	var got string
	var sink Sink = SinkFunc(func(text string) { got += text })
	sink.Insert("ok")
	assert.Equal(t, "ok", got)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
}
