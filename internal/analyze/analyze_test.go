package analyze

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobradar/jobradar/internal/ai"
	"github.com/jobradar/jobradar/internal/models"
)

type fakeProvider struct {
	mu       sync.Mutex
	calls    map[string]int
	failures map[string]error
	failOnce map[string]error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		calls:    map[string]int{},
		failures: map[string]error{},
		failOnce: map[string]error{},
	}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ExtractJobs(context.Context, string) ([]models.CandidateJob, error) {
	return nil, nil
}

func (f *fakeProvider) Analyze(_ context.Context, job models.Job, _ []ai.Resume) (*models.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[job.DedupKey]++
	if err, ok := f.failures[job.DedupKey]; ok {
		return nil, err
	}
	if err, ok := f.failOnce[job.DedupKey]; ok {
		delete(f.failOnce, job.DedupKey)
		return nil, err
	}
	return &models.Analysis{QualificationScore: 75}, nil
}

type memStore struct {
	mu       sync.Mutex
	analyses map[string]*models.Analysis
	statuses map[string]models.AnalysisStatus
}

func newMemStore() *memStore {
	return &memStore{
		analyses: map[string]*models.Analysis{},
		statuses: map[string]models.AnalysisStatus{},
	}
}

func (m *memStore) SetAnalysis(_ context.Context, key string, a *models.Analysis, st models.AnalysisStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses[key] = a
	m.statuses[key] = st
	return nil
}

func testOptions() Options {
	return Options{Concurrency: 2, MaxAttempts: 3, InitialDelay: time.Millisecond}
}

func TestRunAnalyzesAll(t *testing.T) {
	provider := newFakeProvider()
	store := newMemStore()
	a := New(provider, store, nil, testOptions(), zerolog.Nop())

	jobs := []models.Job{{DedupKey: "a"}, {DedupKey: "b"}, {DedupKey: "c"}}
	result := a.Run(context.Background(), jobs)

	if result.Analyzed != 3 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	for _, key := range []string{"a", "b", "c"} {
		if store.statuses[key] != models.AnalysisDone {
			t.Fatalf("job %s not done: %q", key, store.statuses[key])
		}
		if store.analyses[key] == nil || store.analyses[key].QualificationScore != 75 {
			t.Fatalf("job %s missing analysis", key)
		}
	}
}

func TestRunRetriesTransient(t *testing.T) {
	provider := newFakeProvider()
	provider.failOnce["a"] = &ai.ProviderError{Provider: "fake", Transient: true, Err: errors.New("HTTP 429")}
	store := newMemStore()
	a := New(provider, store, nil, testOptions(), zerolog.Nop())

	result := a.Run(context.Background(), []models.Job{{DedupKey: "a"}})
	if result.Analyzed != 1 {
		t.Fatalf("expected success after retry: %+v", result)
	}
	if provider.calls["a"] != 2 {
		t.Fatalf("expected 2 attempts, got %d", provider.calls["a"])
	}
}

func TestRunPermanentFailureNoRetry(t *testing.T) {
	provider := newFakeProvider()
	provider.failures["a"] = &ai.ProviderError{Provider: "fake", Err: errors.New("HTTP 401")}
	store := newMemStore()
	a := New(provider, store, nil, testOptions(), zerolog.Nop())

	result := a.Run(context.Background(), []models.Job{{DedupKey: "a"}, {DedupKey: "b"}})
	if result.Failed != 1 || result.Analyzed != 1 {
		t.Fatalf("expected isolated failure: %+v", result)
	}
	if provider.calls["a"] != 1 {
		t.Fatalf("permanent error retried: %d attempts", provider.calls["a"])
	}
	if store.statuses["a"] != models.AnalysisFailed {
		t.Fatalf("failure not recorded: %q", store.statuses["a"])
	}
	if store.statuses["b"] != models.AnalysisDone {
		t.Fatalf("other job should still complete: %q", store.statuses["b"])
	}
}

func TestRunGivesUpAfterMaxAttempts(t *testing.T) {
	provider := newFakeProvider()
	provider.failures["a"] = &ai.ProviderError{Provider: "fake", Transient: true, Err: errors.New("HTTP 503")}
	store := newMemStore()
	a := New(provider, store, nil, testOptions(), zerolog.Nop())

	result := a.Run(context.Background(), []models.Job{{DedupKey: "a"}})
	if result.Failed != 1 {
		t.Fatalf("expected failure: %+v", result)
	}
	if provider.calls["a"] != 3 {
		t.Fatalf("expected 3 attempts, got %d", provider.calls["a"])
	}
	if len(result.Errors) != 1 || result.Errors[0].Stage != "analyze" {
		t.Fatalf("unexpected errors: %+v", result.Errors)
	}
}
