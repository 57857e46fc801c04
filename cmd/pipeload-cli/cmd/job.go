package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/PipeLoad/internal/config"
	"github.com/piwi3910/PipeLoad/internal/importer"
)

// jobFlags are the input flags shared by calculate and compare.
type jobFlags struct {
	pipesFile      string
	name           string
	container      string
	width          float64
	height         float64
	length         float64
	weightCapacity float64
	minSpace       float64
	allowance      float64
	price          float64
	gridFastPath   bool
}

func (f *jobFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.pipesFile, "pipes", "p", "", "pipe list to load (.csv or .xlsx), appended to the job's pipes")
	fl.StringVar(&f.name, "name", "", "project name used in reports")
	fl.StringVarP(&f.container, "container", "c", "", "container preset (see 'pipeload containers')")
	fl.Float64Var(&f.width, "width", 0, "container inner width, cm")
	fl.Float64Var(&f.height, "height", 0, "container inner height, cm")
	fl.Float64Var(&f.length, "length", 0, "container inner length, cm")
	fl.Float64Var(&f.weightCapacity, "capacity", 0, "container payload, kg (0 = unlimited)")
	fl.Float64Var(&f.minSpace, "min-space", 0, "clearance between pipes, cm")
	fl.Float64Var(&f.allowance, "allowance", 0, "radial clearance for nesting, cm")
	fl.Float64Var(&f.price, "price", 0, "freight price per container")
	fl.BoolVar(&f.gridFastPath, "grid-fast-path", false, "use the row x column formula when spacing is zero")
}

// overrides maps the flags the user actually set onto config overrides.
func (f *jobFlags) overrides(cmd *cobra.Command) *config.Overrides {
	o := &config.Overrides{JobFile: cfgFile}
	changed := cmd.Flags().Changed
	if changed("container") {
		o.Container = &f.container
	}
	floats := []struct {
		flag string
		src  *float64
		dst  **float64
	}{
		{"width", &f.width, &o.Width},
		{"height", &f.height, &o.Height},
		{"length", &f.length, &o.Length},
		{"capacity", &f.weightCapacity, &o.WeightCapacity},
		{"min-space", &f.minSpace, &o.MinSpace},
		{"allowance", &f.allowance, &o.Allowance},
		{"price", &f.price, &o.PricePerContainer},
	}
	for _, fl := range floats {
		if changed(fl.flag) {
			*fl.dst = fl.src
		}
	}
	if changed("grid-fast-path") {
		o.GridFastPath = &f.gridFastPath
	}
	return o
}

// loadJob resolves the job, starts the logger at the job's level and
// appends any pipes from --pipes.
func (f *jobFlags) loadJob(cmd *cobra.Command) (config.Job, error) {
	job, err := config.Load(f.overrides(cmd))
	if err != nil {
		return config.Job{}, err
	}
	if err := initLogger(job.LogLevel); err != nil {
		return config.Job{}, err
	}
	if f.name != "" {
		job.Name = f.name
	}

	if f.pipesFile != "" {
		result, err := importPipes(f.pipesFile)
		if err != nil {
			return config.Job{}, err
		}
		for _, w := range result.Warnings {
			logger.Warn("import warning", zap.String("file", f.pipesFile), zap.String("detail", w))
		}
		if len(result.Errors) > 0 {
			return config.Job{}, fmt.Errorf("failed to import %s: %s", f.pipesFile, strings.Join(result.Errors, "; "))
		}
		logger.Info("pipes imported", zap.String("file", f.pipesFile), zap.Int("count", len(result.Pipes)))
		job.Pipes = append(job.Pipes, result.Pipes...)
	}

	if err := job.Validate(); err != nil {
		return config.Job{}, err
	}
	return job, nil
}

func importPipes(path string) (importer.ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return importer.ImportCSV(path), nil
	case ".xlsx", ".xlsm":
		return importer.ImportExcel(path), nil
	default:
		return importer.ImportResult{}, fmt.Errorf("unsupported pipe list %q: use .csv or .xlsx", path)
	}
}
