package orchestration

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"kaya/internal/logger"
)

// ScriptExtension is the required extension of batch scripts.
const ScriptExtension = ".kaya"

// ValidateScriptFile checks that path exists and ends in .kaya.
func ValidateScriptFile(fs afero.Fs, path string) error {
	if ext := filepath.Ext(path); ext != ScriptExtension {
		return fmt.Errorf("script file must have %s extension, got: %q", ScriptExtension, ext)
	}
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("script file does not exist: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("script path is a directory: %s", path)
	}
	return nil
}

// ExecuteScript feeds every line of the script at path to the runtime's
// session, flushing the writer after each line so output is never animated.
func ExecuteScript(fs afero.Fs, path string, rt *Runtime) error {
	logger.Debug("Starting script execution", "script", path)

	if err := ValidateScriptFile(fs, path); err != nil {
		return err
	}

	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	if err := rt.Session.RunScript(f, rt.Writer.Skip); err != nil {
		return err
	}
	rt.Writer.Skip()

	logger.Debug("Script execution completed", "script", path)
	return nil
}
