package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaya/internal/parser"
	"kaya/internal/testutils"
	"kaya/pkg/kayatypes"
)

func TestEchoCommand_Name(t *testing.T) {
	cmd := &EchoCommand{}
	assert.Equal(t, "echo", cmd.Name())
	assert.NotEmpty(t, cmd.Description())
	assert.Equal(t, "echo <text>", cmd.Usage())
}

func TestEchoCommand_Execute(t *testing.T) {
	cmd := &EchoCommand{}
	ctx := testutils.NewMockContext()

	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "simple text", line: "echo Hello World", expected: "Hello World"},
		{name: "key value kept verbatim", line: "echo a=1 b", expected: "a=1 b"},
		{name: "quotes kept verbatim", line: `echo "quoted words"`, expected: `"quoted words"`},
		{name: "special characters", line: "echo Hello @#$%^&*() World!", expected: "Hello @#$%^&*() World!"},
		{name: "no remainder", line: "echo", expected: "Usage: echo <text>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, params := parser.Parse(tt.line)
			out, err := cmd.Execute(ctx, params)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestEchoCommand_OtherShapes(t *testing.T) {
	cmd := &EchoCommand{}
	ctx := testutils.NewMockContext()

	out, err := cmd.Execute(ctx, kayatypes.TextParams("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", out)

	out, err = cmd.Execute(ctx, kayatypes.ListParams("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "a b", out)
}
