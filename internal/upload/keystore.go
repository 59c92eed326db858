package upload

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	configDirName  = "gitrecap"
	configFileName = "config.json"
)

// userConfigDir is swapped in tests.
var userConfigDir = os.UserConfigDir

// storedConfig is the on-disk shape of the per-user config file.
type storedConfig struct {
	UploadKey string `json:"uploadKey"`
}

// configFilePath returns the per-user config file location.
func configFilePath() (string, error) {
	base, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

// LoadSavedKey returns the persisted upload key, or the empty string when
// none was saved. Unreadable or malformed files count as no saved key.
func LoadSavedKey() string {
	path, err := configFilePath()
	if err != nil {
		return ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var cfg storedConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return ""
	}
	return cfg.UploadKey
}

// SaveKey persists the upload key for later runs. Persistence failures are
// not surfaced; the next run simply prompts again.
func SaveKey(key string) {
	path, err := configFilePath()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return
	}
	data, err := json.Marshal(storedConfig{UploadKey: key})
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o600)
}
