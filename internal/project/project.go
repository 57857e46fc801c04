// Package project persists projects, application preferences, the pipe
// inventory and job templates as JSON under ~/.pipeload/.
package project

import (
	"path/filepath"
	"strings"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// FileExtension is the extension of saved project files.
const FileExtension = ".pipeload"

// WithExtension appends FileExtension to path unless it already ends with it.
func WithExtension(path string) string {
	if strings.EqualFold(filepath.Ext(path), FileExtension) {
		return path
	}
	return path + FileExtension
}

// Save writes a project, including its last result, to path.
func Save(path string, proj model.Project) error {
	return writeDocument(path, kindProject, proj)
}

// Load reads a project written by Save. Settings missing from older files
// fall back to their defaults.
func Load(path string) (model.Project, error) {
	var proj model.Project
	if err := readDocument(path, kindProject, &proj); err != nil {
		return model.Project{}, err
	}

	if proj.Pipes == nil {
		proj.Pipes = []model.Pipe{}
	}
	if proj.Settings.MaxRounds <= 0 {
		proj.Settings.MaxRounds = model.DefaultMaxRounds
	}
	if proj.Name == "" {
		proj.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return proj, nil
}
