package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (f *fakeRepo) DeleteAnalysesBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return 2, f.err
}

func (f *fakeRepo) calls() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.cutoffs...)
}

func TestRunReturnsWhenRetentionDisabled(t *testing.T) {
	repo := &fakeRepo{}
	w := NewRetentionWorker(zap.NewNop(), repo, 0)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return with retention disabled")
	}

	assert.Empty(t, repo.calls())
}

func TestRunSweepsOnTick(t *testing.T) {
	repo := &fakeRepo{}
	w := NewRetentionWorker(zap.NewNop(), repo, 30)
	w.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(repo.calls()) >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestSweepCutoffMatchesRetentionDays(t *testing.T) {
	repo := &fakeRepo{}
	w := NewRetentionWorker(zap.NewNop(), repo, 30)

	before := time.Now().AddDate(0, 0, -30)
	w.sweep(context.Background())
	after := time.Now().AddDate(0, 0, -30)

	calls := repo.calls()
	require.Len(t, calls, 1)
	assert.False(t, calls[0].Before(before))
	assert.False(t, calls[0].After(after))
}

func TestSweepSurvivesRepoError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	w := NewRetentionWorker(zap.NewNop(), repo, 7)

	w.sweep(context.Background())
	w.sweep(context.Background())

	assert.Len(t, repo.calls(), 2)
}
