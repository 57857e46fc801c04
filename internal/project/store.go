package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// formatVersion is written into every document this package saves.
const formatVersion = "1"

// configDirName is the per-user directory under the home directory.
const configDirName = ".pipeload"

// Document kinds.
const (
	kindProject   = "project"
	kindConfig    = "config"
	kindTemplates = "templates"
)

var (
	// ErrUnsupportedVersion is returned for documents of an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported file version")
	// ErrWrongKind is returned when a file holds a different kind of document,
	// such as a template store opened as a project.
	ErrWrongKind = errors.New("file holds a different kind of document")
)

// document is the envelope shared by projects, preferences and templates.
type document struct {
	Version string          `json:"version"`
	Kind    string          `json:"kind"`
	SavedAt string          `json:"saved_at"`
	Data    json.RawMessage `json:"data"`
}

// configDir returns ~/.pipeload.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// configFile returns the path of name inside configDir.
func configFile(name string) (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// writeDocument wraps v in a versioned envelope of the given kind and writes
// it to path, creating parent directories.
func writeDocument(path, kind string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	out, err := json.MarshalIndent(document{
		Version: formatVersion,
		Kind:    kind,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Data:    data,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", kind, err)
	}
	return os.WriteFile(path, out, 0644)
}

// readDocument reads a document of the given kind from path into v. A
// missing file is returned as is so callers can test it with os.IsNotExist.
func readDocument(path, kind string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse %s %s: %w", kind, filepath.Base(path), err)
	}
	if doc.Version != formatVersion {
		return fmt.Errorf("%s %s: %w: %q", kind, filepath.Base(path), ErrUnsupportedVersion, doc.Version)
	}
	if doc.Kind != kind {
		return fmt.Errorf("%s: %w: expected %s, found %q", filepath.Base(path), ErrWrongKind, kind, doc.Kind)
	}
	if err := json.Unmarshal(doc.Data, v); err != nil {
		return fmt.Errorf("failed to parse %s %s: %w", kind, filepath.Base(path), err)
	}
	return nil
}
