// Package tracking implements the experiment-tracking client.
package tracking

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"go.trai.ch/mill/internal/core/domain"
	"go.trai.ch/mill/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// uploadConcurrency bounds parallel artifact uploads per LogArtifact call.
const uploadConcurrency = 4

var _ ports.Tracker = (*Client)(nil)

// Client implements ports.Tracker against a REST tracking server.
// Artifact payloads go to the object store; the server only records
// references.
type Client struct {
	http       *resty.Client
	experiment string
	store      ports.ObjectStore
	bucket     string
	logger     ports.Logger
}

// NewClient creates a tracking client for one pipeline execution.
// The store may be nil, in which case artifacts are registered by local path.
func NewClient(cfg domain.TrackingConfig, store ports.ObjectStore, bucket string, logger ports.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	http := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.Token != "" {
		http.SetAuthToken(cfg.Token)
	}

	return &Client{
		http:       http,
		experiment: cfg.Experiment,
		store:      store,
		bucket:     bucket,
		logger:     logger,
	}
}

type createRunRequest struct {
	Experiment string `json:"experiment"`
	StartTime  int64  `json:"start_time"`
}

type createRunResponse struct {
	Run struct {
		ID string `json:"id"`
	} `json:"run"`
}

// StartRun opens a run on the tracking server.
func (c *Client) StartRun(ctx context.Context) (string, error) {
	var out createRunResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createRunRequest{
			Experiment: c.experiment,
			StartTime:  time.Now().UnixMilli(),
		}).
		SetResult(&out).
		Post("/api/2.0/runs/create")
	if err != nil {
		return "", zerr.Wrap(err, "failed to create run")
	}
	if resp.IsError() {
		return "", zerr.With(zerr.New("tracking server rejected run creation"),
			"status", resp.StatusCode())
	}
	if out.Run.ID == "" {
		return "", zerr.New("tracking server returned empty run id")
	}
	return out.Run.ID, nil
}

// LogParam records a parameter against the run.
func (c *Client) LogParam(ctx context.Context, runID, key, value string) error {
	return c.post(ctx, "/api/2.0/runs/log-parameter", map[string]any{
		"run_id": runID,
		"key":    key,
		"value":  value,
	})
}

// LogMetric records a metric observation against the run.
func (c *Client) LogMetric(ctx context.Context, runID, key string, value float64, step int64) error {
	return c.post(ctx, "/api/2.0/runs/log-metric", map[string]any{
		"run_id":    runID,
		"key":       key,
		"value":     value,
		"step":      step,
		"timestamp": time.Now().UnixMilli(),
	})
}

// LogArtifact uploads the file or directory at path to the object store and
// registers the resulting keys against the run. Uploads of a directory's
// files run concurrently.
func (c *Client) LogArtifact(ctx context.Context, runID, path string) (string, error) {
	files, err := collectFiles(path)
	if err != nil {
		return "", err
	}

	prefix := fmt.Sprintf("runs/%s/artifacts", runID)
	ref := path
	if c.store != nil {
		ref = fmt.Sprintf("s3://%s/%s/%s", c.bucket, prefix, filepath.Base(path))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(uploadConcurrency)
		for _, file := range files {
			g.Go(func() error {
				data, err := os.ReadFile(file.path) //nolint:gosec // Paths come from the pipeline definition
				if err != nil {
					return zerr.With(zerr.Wrap(err, "failed to read artifact"), "path", file.path)
				}
				return c.store.Put(gctx, c.bucket, prefix+"/"+file.rel, data)
			})
		}
		if err := g.Wait(); err != nil {
			return "", err
		}
	}

	if err := c.post(ctx, "/api/2.0/runs/log-artifact", map[string]any{
		"run_id": runID,
		"path":   ref,
	}); err != nil {
		return "", err
	}
	return ref, nil
}

// EndRun finalizes the run with the given status.
func (c *Client) EndRun(ctx context.Context, runID string, status domain.RunStatus) error {
	return c.post(ctx, "/api/2.0/runs/update", map[string]any{
		"run_id":   runID,
		"status":   string(status),
		"end_time": time.Now().UnixMilli(),
	})
}

func (c *Client) post(ctx context.Context, path string, body map[string]any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "tracking request failed"), "path", path)
	}
	if resp.IsError() {
		return zerr.With(zerr.With(zerr.New("tracking server rejected request"),
			"path", path),
			"status", resp.StatusCode())
	}
	return nil
}

type artifactFile struct {
	path string
	rel  string
}

// collectFiles resolves an artifact path to the list of files beneath it,
// keyed by their path relative to the artifact root's parent.
func collectFiles(path string) ([]artifactFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "artifact not found"), "path", path)
	}

	if !info.IsDir() {
		return []artifactFile{{path: path, rel: filepath.Base(path)}}, nil
	}

	var files []artifactFile
	root := filepath.Dir(path)
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, artifactFile{path: p, rel: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to walk artifact directory"), "path", path)
	}
	return files, nil
}
