package domain_test

import (
	"testing"

	"go.trai.ch/mill/internal/core/domain"
)

func TestTaskStatus_IsTerminal(t *testing.T) {
	terminal := []domain.TaskStatus{
		domain.StatusSucceeded,
		domain.StatusFailed,
		domain.StatusSkippedCached,
		domain.StatusSkippedDependencyFailed,
	}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}

	for _, s := range []domain.TaskStatus{domain.StatusPending, domain.StatusRunning} {
		if s.IsTerminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestNormalizeTaskStatus(t *testing.T) {
	if got := domain.NormalizeTaskStatus("SUCCEEDED"); got != domain.StatusSucceeded {
		t.Errorf("expected succeeded, got %s", got)
	}
	if got := domain.NormalizeTaskStatus("skipped_cached"); got != domain.StatusSkippedCached {
		t.Errorf("expected skipped_cached, got %s", got)
	}
	if got := domain.NormalizeTaskStatus("nonsense"); got != domain.StatusPending {
		t.Errorf("expected pending for unknown input, got %s", got)
	}
}

func TestCacheEntry_Same(t *testing.T) {
	a := domain.CacheEntry{Fingerprint: "fp", Result: domain.Result("out")}

	if !a.Same(domain.CacheEntry{Fingerprint: "fp", Result: domain.Result("out")}) {
		t.Error("expected identical entries to compare equal")
	}
	if a.Same(domain.CacheEntry{Fingerprint: "fp", Result: domain.Result("other")}) {
		t.Error("expected differing results to compare unequal")
	}
	if a.Same(domain.CacheEntry{Fingerprint: "fp2", Result: domain.Result("out")}) {
		t.Error("expected differing fingerprints to compare unequal")
	}
}

func TestConfigEnabled(t *testing.T) {
	if (domain.TrackingConfig{}).Enabled() {
		t.Error("empty tracking config should be disabled")
	}
	if !(domain.TrackingConfig{URL: "http://localhost:5000"}).Enabled() {
		t.Error("tracking config with URL should be enabled")
	}
	if (domain.StorageConfig{}).Enabled() {
		t.Error("empty storage config should be disabled")
	}
	if !(domain.StorageConfig{Bucket: "artifacts"}).Enabled() {
		t.Error("storage config with bucket should be enabled")
	}
}
