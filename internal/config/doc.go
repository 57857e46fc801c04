// Package config resolves command-line calculation jobs from YAML job files,
// PIPELOAD_* environment variables and flag overrides.
package config
