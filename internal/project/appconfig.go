package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// DefaultConfigDir returns ~/.pipeload, or .pipeload in the working
// directory when the home directory cannot be determined.
func DefaultConfigDir() string {
	dir, err := configDir()
	if err != nil {
		return configDirName
	}
	return dir
}

// DefaultConfigPath returns the path of the preferences file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig writes the preferences to path.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeDocument(path, kindConfig, config)
}

// LoadAppConfig reads preferences from path. A missing file yields the
// defaults. Values absent from the file keep their defaults.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if err := readDocument(path, kindConfig, &config); err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	if _, ok := model.GetContainerPreset(config.DefaultContainerPreset); !ok {
		config.DefaultContainerPreset = model.DefaultContainerPreset
	}
	return config, nil
}
