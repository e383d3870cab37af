package terminal

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"kaya/internal/testutils"
	"kaya/internal/typewriter"
	"kaya/pkg/kayatypes"
)

var _ kayatypes.Context = (*Env)(nil)

func TestEnv_SessionID(t *testing.T) {
	testutils.ResetUUIDCounter()
	w := typewriter.New(testutils.NewRecordingSink(), typewriter.WithScheduler(testutils.NewManualScheduler()))

	first := NewEnv(w, true)
	second := NewEnv(w, true)
	assert.Equal(t, "00000001-0000-4000-8000-000000000001", first.SessionID())
	assert.Equal(t, "00000002-0000-4000-8000-000000000002", second.SessionID())
	assert.True(t, first.IsTestMode())

	live := NewEnv(w, false)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`), live.SessionID())
	assert.False(t, live.IsTestMode())
}

func TestEnv_LogAndWrite(t *testing.T) {
	sink := testutils.NewRecordingSink()
	w := typewriter.New(sink, typewriter.WithScheduler(testutils.NewManualScheduler()))
	env := NewEnv(w, true)

	env.Log("a")
	env.Log("b\n")
	env.Write("c")
	env.Log("")
	w.Skip()

	assert.Equal(t, "a\nb\nc\n", sink.String())
	assert.Same(t, w, env.Writer())
}
