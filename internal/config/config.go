package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// ErrNoPipes is returned when a job has nothing to load.
var ErrNoPipes = errors.New("job has no pipes")

const defaultLogLevel = "info"

// Job is a fully resolved calculation request.
// Precedence: CLI flags > YAML job file > Environment variables > Defaults
type Job struct {
	Name      string
	Pipes     []model.Pipe
	Container model.Container
	Settings  model.Settings
	LogLevel  string
}

// yamlJob represents the YAML job file structure.
type yamlJob struct {
	Name      string        `yaml:"name"`
	Container yamlContainer `yaml:"container"`
	Settings  yamlSettings  `yaml:"settings"`
	Pipes     []yamlPipe    `yaml:"pipes"`
	LogLevel  string        `yaml:"log_level"`
}

// yamlContainer selects a preset by name and optionally overrides its dimensions.
type yamlContainer struct {
	Preset         string   `yaml:"preset"`
	Label          string   `yaml:"label"`
	Width          *float64 `yaml:"width"`
	Height         *float64 `yaml:"height"`
	Length         *float64 `yaml:"length"`
	WeightCapacity *float64 `yaml:"weight_capacity"`
}

type yamlSettings struct {
	MinSpace          *float64 `yaml:"min_space"`
	Allowance         *float64 `yaml:"allowance"`
	GridFastPath      *bool    `yaml:"grid_fast_path"`
	MaxRounds         *int     `yaml:"max_rounds"`
	PricePerContainer *float64 `yaml:"price_per_container"`
}

type yamlPipe struct {
	Label            string  `yaml:"label"`
	ExternalDiameter float64 `yaml:"external_diameter"`
	InternalDiameter float64 `yaml:"internal_diameter"`
	Length           float64 `yaml:"length"`
	QuantityMeters   float64 `yaml:"quantity_meters"`
	WeightPerMeter   float64 `yaml:"weight_per_meter"`
}

// Overrides holds command-line flag overrides. Nil fields are not set.
type Overrides struct {
	JobFile           string
	Container         *string
	Width             *float64
	Height            *float64
	Length            *float64
	WeightCapacity    *float64
	MinSpace          *float64
	Allowance         *float64
	GridFastPath      *bool
	PricePerContainer *float64
	LogLevel          *string
}

// Load resolves a job from defaults, environment variables, an optional YAML
// job file and command-line overrides, in increasing precedence.
func Load(overrides *Overrides) (Job, error) {
	job := defaultJob()

	if err := applyEnvConfig(&job); err != nil {
		return Job{}, err
	}

	if overrides != nil && overrides.JobFile != "" {
		yj, err := loadFromFile(overrides.JobFile)
		if err != nil {
			return Job{}, fmt.Errorf("load job file: %w", err)
		}
		if err := applyYAMLJob(&job, yj); err != nil {
			return Job{}, err
		}
	}

	if overrides != nil {
		if err := applyOverrides(&job, overrides); err != nil {
			return Job{}, err
		}
	}

	if err := validateSettings(job.Settings); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Validate checks that the job is ready for a calculation.
func (j Job) Validate() error {
	if len(j.Pipes) == 0 {
		return ErrNoPipes
	}
	for _, p := range j.Pipes {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return j.Container.Validate()
}

// defaultJob returns a Job with default values.
func defaultJob() Job {
	return Job{
		Name:      "Untitled",
		Pipes:     []model.Pipe{},
		Container: model.DefaultContainer(),
		Settings:  model.DefaultSettings(),
		LogLevel:  defaultLogLevel,
	}
}

// loadFromFile loads a job from a YAML file.
func loadFromFile(path string) (*yamlJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yj yamlJob
	if err := yaml.Unmarshal(data, &yj); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return &yj, nil
}

// applyYAMLJob applies a parsed job file to the Job struct.
func applyYAMLJob(job *Job, yj *yamlJob) error {
	if yj.Name != "" {
		job.Name = yj.Name
	}
	if yj.LogLevel != "" {
		job.LogLevel = yj.LogLevel
	}

	if yj.Container.Preset != "" {
		if err := usePreset(job, yj.Container.Preset); err != nil {
			return err
		}
	}
	if yj.Container.Label != "" {
		job.Container.Label = yj.Container.Label
	}
	setFloat(&job.Container.Width, yj.Container.Width)
	setFloat(&job.Container.Height, yj.Container.Height)
	setFloat(&job.Container.Length, yj.Container.Length)
	setFloat(&job.Container.WeightCapacity, yj.Container.WeightCapacity)

	setFloat(&job.Settings.MinSpace, yj.Settings.MinSpace)
	setFloat(&job.Settings.Allowance, yj.Settings.Allowance)
	setFloat(&job.Settings.PricePerContainer, yj.Settings.PricePerContainer)
	if yj.Settings.GridFastPath != nil {
		job.Settings.GridFastPath = *yj.Settings.GridFastPath
	}
	if yj.Settings.MaxRounds != nil {
		job.Settings.MaxRounds = *yj.Settings.MaxRounds
	}

	if len(yj.Pipes) > 0 {
		job.Pipes = make([]model.Pipe, 0, len(yj.Pipes))
		for i, p := range yj.Pipes {
			label := p.Label
			if label == "" {
				label = fmt.Sprintf("Pipe %d", i+1)
			}
			job.Pipes = append(job.Pipes, model.NewPipe(label, p.ExternalDiameter, p.InternalDiameter, p.Length, p.QuantityMeters, p.WeightPerMeter))
		}
	}
	return nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(job *Job) error {
	if name := strings.TrimSpace(os.Getenv("PIPELOAD_CONTAINER")); name != "" {
		if err := usePreset(job, name); err != nil {
			return fmt.Errorf("PIPELOAD_CONTAINER: %w", err)
		}
	}
	if err := envFloat("PIPELOAD_MIN_SPACE", &job.Settings.MinSpace); err != nil {
		return err
	}
	if err := envFloat("PIPELOAD_ALLOWANCE", &job.Settings.Allowance); err != nil {
		return err
	}
	if level := strings.TrimSpace(os.Getenv("PIPELOAD_LOG_LEVEL")); level != "" {
		job.LogLevel = level
	}
	return nil
}

// applyOverrides applies command-line flag overrides.
func applyOverrides(job *Job, o *Overrides) error {
	if o.Container != nil && *o.Container != "" {
		if err := usePreset(job, *o.Container); err != nil {
			return err
		}
	}
	setFloat(&job.Container.Width, o.Width)
	setFloat(&job.Container.Height, o.Height)
	setFloat(&job.Container.Length, o.Length)
	setFloat(&job.Container.WeightCapacity, o.WeightCapacity)
	setFloat(&job.Settings.MinSpace, o.MinSpace)
	setFloat(&job.Settings.Allowance, o.Allowance)
	setFloat(&job.Settings.PricePerContainer, o.PricePerContainer)
	if o.GridFastPath != nil {
		job.Settings.GridFastPath = *o.GridFastPath
	}
	if o.LogLevel != nil && *o.LogLevel != "" {
		job.LogLevel = *o.LogLevel
	}
	return nil
}

// validateSettings validates the final settings.
func validateSettings(s model.Settings) error {
	if s.MinSpace < 0 {
		return fmt.Errorf("min space must be >= 0, got %g", s.MinSpace)
	}
	if s.Allowance < 0 {
		return fmt.Errorf("allowance must be >= 0, got %g", s.Allowance)
	}
	if s.PricePerContainer < 0 {
		return fmt.Errorf("price per container must be >= 0, got %g", s.PricePerContainer)
	}
	return nil
}

func usePreset(job *Job, name string) error {
	preset, ok := model.GetContainerPreset(name)
	if !ok {
		return fmt.Errorf("unknown container preset %q (available: %s)", name, strings.Join(model.ContainerPresetNames(), ", "))
	}
	job.Container = preset.ToContainer()
	return nil
}

// envFloat sets dst from the named variable when it is present.
func envFloat(key string, dst *float64) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = v
	return nil
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
