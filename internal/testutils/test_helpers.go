package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// ScriptTestData returns test script content for batch mode.
func ScriptTestData() map[string]string {
	return map[string]string{
		"basic.kaya": `# Basic script
echo hello
theme list`,

		"theme.kaya": `# Theme round trip
theme set blue

theme.reset`,

		"invalid.kaya": `# Invalid command
frobnicate now`,

		"empty.kaya": `# Empty script
`,
	}
}

// FileHelpers provides utilities for working with test files
type FileHelpers struct{}

// NewFileHelpers creates a new file helpers instance
func NewFileHelpers() *FileHelpers {
	return &FileHelpers{}
}

// CreateTempFile creates a temporary file with given content
func (f *FileHelpers) CreateTempFile(t *testing.T, filename, content string) string {
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, filename)

	err := os.WriteFile(filePath, []byte(content), 0644)
	require.NoError(t, err, "Should create temp file successfully")

	return filePath
}

// MemFs builds an in-memory filesystem holding the given files.
// Keys ending in "/" create directories.
func (f *FileHelpers) MemFs(t *testing.T, files map[string]string) afero.Fs {
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if len(name) > 0 && name[len(name)-1] == '/' {
			require.NoError(t, fs.MkdirAll(name, 0755), "Should create directory %s", name)
			continue
		}
		require.NoError(t, fs.MkdirAll(filepath.Dir(name), 0755))
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644), "Should create file %s", name)
	}
	return fs
}
