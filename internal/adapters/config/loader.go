// Package config provides the pipeline definition loader for mill.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the pipeline file name looked up in the working directory.
const DefaultFilename = "mill.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file. Each task's
// compute function wraps its `run` command through the command runner.
type Loader struct {
	Filename string
	runner   ports.CommandRunner
}

// NewLoader creates a loader for the default pipeline file.
func NewLoader(runner ports.CommandRunner) *Loader {
	return &Loader{
		Filename: DefaultFilename,
		runner:   runner,
	}
}

// Load reads the pipeline definition from the given working directory.
func (l *Loader) Load(cwd string) (*domain.Pipeline, error) {
	path := filepath.Join(cwd, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read pipeline file")
	}

	var millfile Millfile
	if err := yaml.Unmarshal(data, &millfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse pipeline file")
	}

	reg := domain.NewRegistry()
	for _, dto := range millfile.Tasks {
		task, err := l.buildTask(dto)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(task); err != nil {
			return nil, err
		}
	}

	return &domain.Pipeline{
		Version: millfile.Version,
		Tracking: domain.TrackingConfig{
			URL:        millfile.Tracking.URL,
			Experiment: millfile.Tracking.Experiment,
			Token:      millfile.Tracking.Token,
			Timeout:    time.Duration(millfile.Tracking.TimeoutSec) * time.Second,
		},
		Storage: domain.StorageConfig{
			Endpoint:       millfile.Storage.Endpoint,
			Region:         millfile.Storage.Region,
			Bucket:         millfile.Storage.Bucket,
			ForcePathStyle: millfile.Storage.ForcePathStyle,
		},
		Registry: reg,
	}, nil
}

func (l *Loader) buildTask(dto TaskDTO) (*domain.Task, error) {
	if dto.Name == "" {
		return nil, zerr.New("task is missing a name")
	}
	if len(dto.Run) == 0 {
		return nil, zerr.With(zerr.New("task is missing a run command"), "task_name", dto.Name)
	}

	return &domain.Task{
		Name:       domain.NewInternedString(dto.Name),
		Compute:    l.computeFor(dto),
		Identity:   strings.Join(dto.Run, " "),
		Upstream:   domain.NewInternedStrings(dto.DependsOn),
		Config:     dto.Config,
		BestEffort: dto.BestEffort,
		Artifacts:  domain.NewInternedStrings(dto.Artifacts),
	}, nil
}

// computeFor wraps a task's run command as a compute function. Upstream
// results and config literals reach the command through its environment;
// captured stdout becomes the task's Result.
func (l *Loader) computeFor(dto TaskDTO) domain.ComputeFunc {
	return func(ctx context.Context, inputs []domain.Result) (domain.Result, error) {
		env := make([]string, 0, len(inputs)+len(dto.Config))
		for i, input := range inputs {
			env = append(env, fmt.Sprintf("MILL_INPUT_%d=%s", i, string(input)))
			env = append(env, fmt.Sprintf("MILL_INPUT_%s=%s",
				envKey(dto.DependsOn[i]), string(input)))
		}
		for k, v := range dto.Config {
			env = append(env, fmt.Sprintf("MILL_CONFIG_%s=%s", envKey(k), v))
		}

		out, err := l.runner.Run(ctx, dto.Run, env)
		if err != nil {
			return nil, err
		}
		return domain.Result(out), nil
	}
}

// envKey canonicalizes a task or config name into an environment variable suffix.
func envKey(name string) string {
	upper := strings.ToUpper(name)
	return strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, upper)
}
