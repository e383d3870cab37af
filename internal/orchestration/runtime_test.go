package orchestration

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaya/internal/config"
	"kaya/internal/testutils"
	"kaya/internal/typewriter"
)

func testConfig() *config.Config {
	return &config.Config{
		AccentStore:      "/home/kaya/.kaya_theme.txt",
		Interval:         14 * time.Millisecond,
		ChunkSize:        2,
		GreetingTimezone: "UTC",
		GreetingName:     "Ada",
		ProjectsDir:      "/projects",
		TestMode:         true,
	}
}

type fixture struct {
	fs    afero.Fs
	sink  *testutils.RecordingSink
	sched *testutils.ManualScheduler
	host  *HeadlessHost
	rt    *Runtime
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		fs:    afero.NewMemMapFs(),
		sink:  testutils.NewRecordingSink(),
		sched: testutils.NewManualScheduler(),
		host:  NewHeadlessHost(),
	}
	require.NoError(t, f.fs.MkdirAll("/projects/atlas", 0755))

	rt, err := Build(testConfig(), Options{Fs: f.fs, Sink: f.sink, Scheduler: f.sched, Host: f.host})
	require.NoError(t, err)
	f.rt = rt
	return f
}

func TestBuild_Wiring(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, 14*time.Millisecond, f.rt.Writer.Interval())
	assert.Contains(t, f.rt.Commands.Names(), "theme.set")
	assert.Contains(t, f.rt.Commands.Names(), "project.open")
	assert.Len(t, f.rt.Services.GetAllServices(), 2)

	theme, err := f.rt.Services.Theme()
	require.NoError(t, err)
	assert.Contains(t, theme.Names(), "blue")
	_, err = f.rt.Services.Greeting()
	require.NoError(t, err)
	assert.True(t, f.rt.Env.IsTestMode())
	assert.Equal(t, 0, f.sched.Starts(), "nothing shown before Start")
}

func TestRuntime_StartBoots(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, afero.WriteFile(f.fs, "/home/kaya/.kaya_theme.txt", []byte("amber"), 0644))

	require.NoError(t, f.rt.Start(true))
	assert.Equal(t, "amber", f.host.Accent().Name)

	f.sched.RunUntilIdle(100000)
	out := f.sink.String()
	assert.Contains(t, out, "K.A.Y.A")
	assert.Contains(t, out, ", Ada.\n")
	assert.True(t, strings.HasSuffix(out, "Ready.\n\n"))
}

func TestRuntime_StartWithoutBoot(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.rt.Start(false))
	assert.Equal(t, "green", f.host.Accent().Name)
	assert.Equal(t, typewriter.Idle, f.rt.Writer.State())
	assert.Empty(t, f.sink.String())
}

func TestRuntime_ProjectOpenThroughHost(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.rt.Start(false))

	f.rt.Session.Submit("project.open atlas")
	f.rt.Writer.Skip()

	assert.Equal(t, "/projects/atlas", f.host.Project())
	assert.Contains(t, f.sink.String(), `Opened "atlas" in Projects.`)
}

func TestRuntime_HandlerLogPrecedesResult(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, afero.WriteFile(f.fs, "/projects/atlas/plan.md", []byte("# plan"), 0644))
	require.NoError(t, f.rt.Start(false))

	f.rt.Session.Submit("project.open atlas/plan.md")
	f.rt.Writer.Skip()

	assert.Equal(t, "> project.open atlas/plan.md\n\"plan.md\" is a file, opening its folder.\nOpened \"atlas\" in Projects.\n", f.sink.String())
	assert.Equal(t, "/projects/atlas", f.host.Project())
}

func TestBuild_DefaultHost(t *testing.T) {
	rt, err := Build(testConfig(), Options{
		Fs:        afero.NewMemMapFs(),
		Sink:      testutils.NewRecordingSink(),
		Scheduler: testutils.NewManualScheduler(),
	})
	require.NoError(t, err)
	assert.Contains(t, rt.Commands.Names(), "project.open")
}
