package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.trai.ch/mill/cmd/mill/commands"
	"go.trai.ch/mill/internal/adapters/telemetry"
	"go.trai.ch/mill/internal/adapters/tracking"
	"go.trai.ch/mill/internal/app"
	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/core/ports/mocks"
	"go.trai.ch/mill/internal/engine/executor"
	"go.uber.org/mock/gomock"
)

type cliFixture struct {
	cli      *commands.CLI
	loader   *mocks.MockConfigLoader
	store    *mocks.MockResultStore
	hasher   *mocks.MockFingerprinter
	trackers *mocks.MockTrackerFactory
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	loader := mocks.NewMockConfigLoader(ctrl)
	store := mocks.NewMockResultStore(ctrl)
	hasher := mocks.NewMockFingerprinter(ctrl)
	trackers := mocks.NewMockTrackerFactory(ctrl)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	exec := executor.New(store, hasher, telemetry.NewNoOpTracer(), logger)
	a := app.New(loader, exec, trackers, store, logger)

	return &cliFixture{
		cli:      commands.New(a),
		loader:   loader,
		store:    store,
		hasher:   hasher,
		trackers: trackers,
	}
}

func pipelineWithTask(t *testing.T, name string) *domain.Pipeline {
	t.Helper()
	reg := domain.NewRegistry()
	err := reg.Register(&domain.Task{
		Name:     domain.NewInternedString(name),
		Identity: name,
		Compute: func(_ context.Context, _ []domain.Result) (domain.Result, error) {
			return domain.Result("ok"), nil
		},
	})
	if err != nil {
		t.Fatalf("failed to register task: %v", err)
	}
	return &domain.Pipeline{Registry: reg}
}

func TestRun_Success(t *testing.T) {
	f := newCLIFixture(t)

	pipeline := pipelineWithTask(t, "build")

	// Setup strict expectations in the correct sequence
	// 1. Loader.Load is called first
	f.loader.EXPECT().Load(".").Return(pipeline, nil).Times(1)

	// 2. The tracker factory builds the run's tracker
	f.trackers.EXPECT().New(gomock.Any(), gomock.Any()).Return(tracking.NewNoopTracker(), nil).Times(1)

	// 3. The fingerprint is computed once and misses the store
	f.hasher.EXPECT().Fingerprint(gomock.Any(), gomock.Any()).Return("fp", nil).Times(1)
	f.store.EXPECT().Lookup("fp").Return(nil, nil).Times(1)

	// 4. The fresh result is persisted
	f.store.EXPECT().Store(gomock.Any()).Return(nil).Times(1)

	f.cli.SetArgs([]string{"run", "build"})

	if err := f.cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestRun_NoCacheSkipsLookup(t *testing.T) {
	f := newCLIFixture(t)

	pipeline := pipelineWithTask(t, "build")
	f.loader.EXPECT().Load(".").Return(pipeline, nil).Times(1)
	f.trackers.EXPECT().New(gomock.Any(), gomock.Any()).Return(tracking.NewNoopTracker(), nil).Times(1)
	f.hasher.EXPECT().Fingerprint(gomock.Any(), gomock.Any()).Return("fp", nil).Times(1)
	// No Lookup expectation: the flag must bypass the store entirely.
	f.store.EXPECT().Store(gomock.Any()).Return(nil).Times(1)

	f.cli.SetArgs([]string{"run", "--no-cache", "build"})

	if err := f.cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}

func TestRun_UnknownTarget(t *testing.T) {
	f := newCLIFixture(t)

	f.loader.EXPECT().Load(".").Return(pipelineWithTask(t, "build"), nil).Times(1)

	f.cli.SetArgs([]string{"run", "ghost"})

	err := f.cli.Execute(context.Background())
	if !errors.Is(err, domain.ErrUnknownTask) {
		t.Errorf("expected ErrUnknownTask, got %v", err)
	}
}

func TestPlan_PrintsExecutionOrder(t *testing.T) {
	f := newCLIFixture(t)

	reg := domain.NewRegistry()
	for _, name := range []string{"prepare", "train"} {
		task := &domain.Task{Name: domain.NewInternedString(name)}
		if name == "train" {
			task.Upstream = []domain.InternedString{domain.NewInternedString("prepare")}
		}
		if err := reg.Register(task); err != nil {
			t.Fatalf("failed to register task: %v", err)
		}
	}
	f.loader.EXPECT().Load(".").Return(&domain.Pipeline{Registry: reg}, nil).Times(1)

	var out bytes.Buffer
	f.cli.SetOutput(&out)
	f.cli.SetArgs([]string{"plan"})

	if err := f.cli.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "1. prepare\n2. train\n"
	if out.String() != want {
		t.Errorf("expected output %q, got %q", want, out.String())
	}
}

func TestClean(t *testing.T) {
	f := newCLIFixture(t)

	f.store.EXPECT().Reset().Return(nil).Times(1)

	f.cli.SetArgs([]string{"clean"})

	if err := f.cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error, got: %v", err)
	}
}
