package terminal

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaya/internal/commands"
	"kaya/internal/commands/builtin"
	"kaya/internal/services"
	"kaya/internal/testutils"
	"kaya/internal/typewriter"
	"kaya/pkg/kayatypes"
)

type call struct {
	name   string
	params kayatypes.Params
}

type recordingBus struct {
	mu    sync.Mutex
	calls []call
	fn    func(name string, params kayatypes.Params) (string, error)
}

func (b *recordingBus) Dispatch(name string, params kayatypes.Params) (string, error) {
	b.mu.Lock()
	b.calls = append(b.calls, call{name: name, params: params})
	fn := b.fn
	b.mu.Unlock()
	if fn == nil {
		return strings.ToUpper(name), nil
	}
	return fn(name, params)
}

func (b *recordingBus) Calls() []call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]call(nil), b.calls...)
}

type harness struct {
	sink      *testutils.RecordingSink
	scheduler *testutils.ManualScheduler
	writer    *typewriter.Writer
	env       *Env
	bus       *recordingBus
	session   *Session
	cleared   int
}

func newHarness(t *testing.T, opts ...SessionOption) *harness {
	t.Helper()
	h := &harness{
		sink:      testutils.NewRecordingSink(),
		scheduler: testutils.NewManualScheduler(),
		bus:       &recordingBus{},
	}
	h.writer = typewriter.New(h.sink, typewriter.WithScheduler(h.scheduler))
	h.env = NewEnv(h.writer, true)
	opts = append([]SessionOption{WithClearInput(func() { h.cleared++ })}, opts...)
	h.session = NewSession(h.env, h.bus, opts...)
	return h
}

// output drains the writer and returns everything shown so far.
func (h *harness) output() string {
	h.scheduler.RunUntilIdle(10000)
	return h.sink.String()
}

func TestSession_EchoAndResult(t *testing.T) {
	h := newHarness(t)

	assert.True(t, h.session.Submit("  ping  "))
	assert.Equal(t, "> ping\nPING\n", h.output())
	assert.Equal(t, 1, h.cleared)
	assert.False(t, h.session.Busy())
}

func TestSession_EmptyLineIsNoOp(t *testing.T) {
	h := newHarness(t)

	for _, line := range []string{"", "   ", "\t\n"} {
		assert.False(t, h.session.Submit(line))
	}

	assert.Empty(t, h.bus.Calls())
	assert.Equal(t, "", h.output())
	assert.Equal(t, 0, h.scheduler.Starts(), "writer was never touched")
	assert.Equal(t, 0, h.cleared)

	h.session.Submit("first")
	assert.Equal(t, "> first\nFIRST\n", h.output(), "no gap before the first command")
}

func TestSession_GapBetweenCommands(t *testing.T) {
	h := newHarness(t)

	h.session.Submit("a")
	h.session.Submit("b")
	h.session.Submit("   ")
	h.session.Submit("c")

	assert.Equal(t, "> a\nA\n\n> b\nB\n\n> c\nC\n", h.output())
}

func TestSession_EmptyResultShowsOnlyEcho(t *testing.T) {
	h := newHarness(t)
	h.bus.fn = func(string, kayatypes.Params) (string, error) { return "", nil }

	h.session.Submit("quiet")
	assert.Equal(t, "> quiet\n", h.output())
}

func TestSession_ResultKeepsOwnNewline(t *testing.T) {
	h := newHarness(t)
	h.bus.fn = func(string, kayatypes.Params) (string, error) { return "line one\nline two\n", nil }

	h.session.Submit("multi")
	assert.Equal(t, "> multi\nline one\nline two\n", h.output())
}

func TestSession_HandlerErrorRendered(t *testing.T) {
	h := newHarness(t)
	h.bus.fn = func(string, kayatypes.Params) (string, error) { return "", errors.New("disk on fire") }

	assert.True(t, h.session.Submit("burn"))
	assert.Equal(t, "> burn\nError: disk on fire\n", h.output())
	assert.Equal(t, 1, h.cleared)
	assert.False(t, h.session.Busy())
}

func TestSession_PanicRecovered(t *testing.T) {
	h := newHarness(t)
	h.bus.fn = func(name string, _ kayatypes.Params) (string, error) {
		if name == "explode" {
			panic("kaboom")
		}
		return "fine", nil
	}

	assert.NotPanics(t, func() { h.session.Submit("explode") })
	assert.False(t, h.session.Busy(), "guard released after a panic")

	h.session.Submit("after")
	assert.Equal(t, "> explode\nError: kaboom\n\n> after\nfine\n", h.output())
}

func TestSession_UnknownCommand(t *testing.T) {
	sink := testutils.NewRecordingSink()
	scheduler := testutils.NewManualScheduler()
	env := NewEnv(typewriter.New(sink, typewriter.WithScheduler(scheduler)), true)
	session := NewSession(env, commands.NewRegistry(env))

	session.Submit("frobnicate now")
	scheduler.RunUntilIdle(10000)

	assert.Equal(t, "> frobnicate now\nError: Unknown command: frobnicate\n", sink.String())
}

func TestSession_ReentrantSubmitDropped(t *testing.T) {
	h := newHarness(t)
	var innerAccepted bool
	h.bus.fn = func(name string, _ kayatypes.Params) (string, error) {
		if name == "outer" {
			innerAccepted = h.session.Submit("inner")
		}
		return "done " + name, nil
	}

	h.session.Submit("outer")

	assert.False(t, innerAccepted)
	calls := h.bus.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "outer", calls[0].name)
	assert.Equal(t, "> outer\ndone outer\n", h.output())
	assert.NotContains(t, h.sink.String(), "inner")
}

func TestSession_ConcurrentSubmitDropped(t *testing.T) {
	h := newHarness(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	h.bus.fn = func(name string, _ kayatypes.Params) (string, error) {
		if name == "slow" {
			close(entered)
			<-release
		}
		return name, nil
	}

	done := make(chan bool)
	go func() { done <- h.session.Submit("slow") }()
	<-entered

	assert.True(t, h.session.Busy())
	assert.False(t, h.session.Submit("fast"))

	close(release)
	assert.True(t, <-done)
	assert.Len(t, h.bus.Calls(), 1)

	assert.True(t, h.session.Submit("fast"), "accepted once the guard is released")
}

func TestSession_Augmentation(t *testing.T) {
	h := newHarness(t)

	h.session.Submit("theme set blue")
	h.session.Submit("theme.set teal")
	h.session.Submit("echo a b")
	h.session.Submit("theme")

	calls := h.bus.Calls()
	require.Len(t, calls, 4)

	for _, c := range calls[:2] {
		require.Equal(t, kayatypes.ParamsFields, c.params.Kind(), c.name)
		for _, key := range []string{"args", "argv", "tokens", "rest"} {
			_, ok := c.params.Field(key)
			assert.True(t, ok, "%s carries %s", c.name, key)
		}
	}
	argv, _ := calls[0].params.Field("argv")
	assert.Equal(t, []string{"set", "blue"}, argv)
	rest, _ := calls[1].params.Field("rest")
	assert.Equal(t, "teal", rest)

	_, hasArgv := calls[2].params.Field("argv")
	assert.False(t, hasArgv, "echo is not augmented")

	assert.True(t, calls[3].params.IsAbsent(), "single-token lines are not augmented")
}

func TestSession_AugmentationKeepsParserValues(t *testing.T) {
	h := newHarness(t)

	h.session.Submit(`theme set "deep blue"`)

	calls := h.bus.Calls()
	require.Len(t, calls, 1)
	args, _ := calls[0].params.Field("args")
	assert.Equal(t, []string{"set", "deep blue"}, args, "parser args win over the whitespace split")
	tokens, _ := calls[0].params.Field("tokens")
	assert.Equal(t, []string{"set", `"deep`, `blue"`}, tokens)
}

func TestSession_WithAugmentedCommands(t *testing.T) {
	h := newHarness(t, WithAugmentedCommands("echo", "fs.*"))

	h.session.Submit("echo a b")
	h.session.Submit("fs.open x y")
	h.session.Submit("theme set blue")

	calls := h.bus.Calls()
	require.Len(t, calls, 3)
	_, ok := calls[0].params.Field("argv")
	assert.True(t, ok)
	_, ok = calls[1].params.Field("argv")
	assert.True(t, ok)
	_, ok = calls[2].params.Field("argv")
	assert.False(t, ok)
}

func TestSession_OutputOrderWhileAnimating(t *testing.T) {
	h := newHarness(t)

	h.session.Submit("one")
	h.scheduler.Fire()
	h.session.Submit("two")

	assert.Equal(t, "> one\nONE\n\n> two\nTWO\n", h.output())
}

func TestSession_ThemeEndToEnd(t *testing.T) {
	sink := testutils.NewRecordingSink()
	scheduler := testutils.NewManualScheduler()
	writer := typewriter.New(sink, typewriter.WithScheduler(scheduler))
	env := NewEnv(writer, true)
	registry := commands.NewRegistry(env)

	fs := afero.NewMemMapFs()
	applier := testutils.NewRecordingApplier()
	theme := services.NewThemeService(nil, services.NewAccentStore(fs, "/kaya_theme.txt"), applier)
	require.NoError(t, builtin.RegisterAll(registry, builtin.Dependencies{Theme: theme, Fs: fs}))

	session := NewSession(env, registry)
	session.Submit("theme.set blue")
	session.Submit("THEME SET not-a-color")
	session.Submit("theme.set name=amber")
	session.Submit("theme.set accent=blue")
	session.Submit("theme reset")
	writer.Skip()

	out := sink.String()
	assert.Contains(t, out, "> theme.set blue\nTheme set to: blue\n")
	assert.Contains(t, out, "Unknown theme 'not-a-color'")
	assert.Contains(t, out, "> theme.set name=amber\nTheme set to: amber\n")
	assert.Contains(t, out, "> theme.set accent=blue\nTheme set to: blue\n")
	assert.Contains(t, out, "Theme reset to: green\n")
	assert.Equal(t, []string{"blue", "amber", "blue", "green"}, applier.Applied())
}

func TestSession_RunScript(t *testing.T) {
	h := newHarness(t)
	script := testutils.ScriptTestData()["basic.kaya"]
	flushes := 0

	require.NoError(t, h.session.RunScript(strings.NewReader(script), func() {
		flushes++
		h.writer.Skip()
	}))

	out := h.sink.String()
	assert.NotContains(t, out, "#")
	assert.Equal(t, len(h.bus.Calls()), flushes)
	assert.Equal(t, typewriter.Idle, h.writer.State())
}

func TestSession_RunScriptSkipsComments(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.session.RunScript(strings.NewReader("# header\n\n  alpha\n   # indented comment\nbeta\n"), nil))

	calls := h.bus.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "alpha", calls[0].name)
	assert.Equal(t, "beta", calls[1].name)
}
