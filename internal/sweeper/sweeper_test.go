package sweeper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"roomledger/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (e *countingExpirer) ExpireOld(context.Context) (int64, error) {
	e.calls.Add(1)
	if e.err != nil {
		return 0, e.err
	}
	return 2, nil
}

func TestRunOnce(t *testing.T) {
	ok := &countingExpirer{}
	assert.EqualValues(t, 2, New(ok, time.Minute, logger.Discard()).RunOnce(context.Background()))

	failing := &countingExpirer{err: errors.New("mongo down")}
	assert.EqualValues(t, 0, New(failing, time.Minute, logger.Discard()).RunOnce(context.Background()))
	assert.EqualValues(t, 1, failing.calls.Load())
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	expirer := &countingExpirer{}
	s := New(expirer, 5*time.Millisecond, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	assert.Eventually(t, func() bool { return expirer.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
