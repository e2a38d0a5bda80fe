package config_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mill/internal/adapters/config"
	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const pipelineFile = `version: "1"
tracking:
  url: http://localhost:5000
  experiment: demo
  token: secret
  timeoutSec: 10
storage:
  endpoint: http://localhost:9000
  region: us-east-1
  bucket: artifacts
  forcePathStyle: true
tasks:
  - name: prepare
    run: ["python", "prepare.py"]
    config:
      rows: "1000"
  - name: train
    run: ["python", "train.py"]
    dependsOn: [prepare]
    artifacts: [out/model.bin]
  - name: evaluate
    run: ["python", "evaluate.py"]
    dependsOn: [train]
    bestEffort: true
  - name: aardvark
    run: ["true"]
`

func writePipeline(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFilename), []byte(content), 0o644))
	return dir
}

func TestLoader_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := config.NewLoader(mocks.NewMockCommandRunner(ctrl))
	pipeline, err := loader.Load(writePipeline(t, pipelineFile))
	require.NoError(t, err)

	assert.Equal(t, "1", pipeline.Version)
	assert.Equal(t, "http://localhost:5000", pipeline.Tracking.URL)
	assert.Equal(t, "demo", pipeline.Tracking.Experiment)
	assert.Equal(t, 10*time.Second, pipeline.Tracking.Timeout)
	assert.True(t, pipeline.Tracking.Enabled())
	assert.Equal(t, "artifacts", pipeline.Storage.Bucket)
	assert.True(t, pipeline.Storage.ForcePathStyle)

	// Registration order follows file order, even when it is not alphabetical.
	names := make([]string, 0, pipeline.Registry.Len())
	for _, n := range pipeline.Registry.Names() {
		names = append(names, n.String())
	}
	assert.Equal(t, []string{"prepare", "train", "evaluate", "aardvark"}, names)

	train, err := pipeline.Registry.Get(domain.NewInternedString("train"))
	require.NoError(t, err)
	assert.Equal(t, "python train.py", train.Identity)
	require.Len(t, train.Upstream, 1)
	assert.Equal(t, "prepare", train.Upstream[0].String())
	require.Len(t, train.Artifacts, 1)
	assert.Equal(t, "out/model.bin", train.Artifacts[0].String())

	evaluate, err := pipeline.Registry.Get(domain.NewInternedString("evaluate"))
	require.NoError(t, err)
	assert.True(t, evaluate.BestEffort)
}

func TestLoader_ComputeWiresEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	loader := config.NewLoader(runner)

	dir := writePipeline(t, `tasks:
  - name: base
    run: ["emit"]
  - name: report
    run: ["python", "report.py"]
    dependsOn: [base]
    config:
      out-format: json
`)
	pipeline, err := loader.Load(dir)
	require.NoError(t, err)

	report, err := pipeline.Registry.Get(domain.NewInternedString("report"))
	require.NoError(t, err)

	runner.EXPECT().
		Run(gomock.Any(), []string{"python", "report.py"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []string, env []string) ([]byte, error) {
			assert.True(t, slices.Contains(env, "MILL_INPUT_0=42"))
			assert.True(t, slices.Contains(env, "MILL_INPUT_BASE=42"))
			assert.True(t, slices.Contains(env, "MILL_CONFIG_OUT_FORMAT=json"))
			return []byte("report ready"), nil
		})

	out, err := report.Compute(context.Background(), []domain.Result{domain.Result("42")})
	require.NoError(t, err)
	assert.Equal(t, "report ready", string(out))
}

func TestLoader_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := config.NewLoader(mocks.NewMockCommandRunner(ctrl))
	_, err := loader.Load(t.TempDir())
	require.Error(t, err)
}

func TestLoader_InvalidTasks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	loader := config.NewLoader(mocks.NewMockCommandRunner(ctrl))

	cases := []struct {
		name    string
		content string
	}{
		{
			name: "missing name",
			content: `tasks:
  - run: ["true"]
`,
		},
		{
			name: "missing run command",
			content: `tasks:
  - name: ghost
`,
		},
		{
			name: "duplicate task",
			content: `tasks:
  - name: twin
    run: ["true"]
  - name: twin
    run: ["true"]
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loader.Load(writePipeline(t, tc.content))
			require.Error(t, err)
		})
	}
}
