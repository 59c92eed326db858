package upload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	userConfigDir = func() (string, error) { return tmpDir, nil }
	t.Cleanup(func() { userConfigDir = os.UserConfigDir })
	return tmpDir
}

func TestSaveAndLoadKey(t *testing.T) {
	tmpDir := useTempConfigDir(t)

	SaveKey("secret-key")
	assert.Equal(t, "secret-key", LoadSavedKey())

	// The file lands in the app subdirectory with owner-only permissions
	path := filepath.Join(tmpDir, configDirName, configFileName)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveKeyOverwrites(t *testing.T) {
	useTempConfigDir(t)

	SaveKey("first")
	SaveKey("second")
	assert.Equal(t, "second", LoadSavedKey())
}

func TestLoadSavedKeyMissingFile(t *testing.T) {
	useTempConfigDir(t)

	assert.Empty(t, LoadSavedKey())
}

func TestLoadSavedKeyMalformedFile(t *testing.T) {
	tmpDir := useTempConfigDir(t)

	dir := filepath.Join(tmpDir, configDirName)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("not json"), 0o600))

	assert.Empty(t, LoadSavedKey())
}
