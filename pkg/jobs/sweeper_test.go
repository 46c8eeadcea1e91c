package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSweeperRunsPeriodically(t *testing.T) {
	var runs int64
	sweeper := NewSweeper("test", time.Second, func(ctx context.Context) (int64, error) {
		atomic.AddInt64(&runs, 1)
		return 1, nil
	}, nil)

	sweeper.Start(context.Background())
	defer sweeper.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&runs) >= 1
	}, 3*time.Second, 50*time.Millisecond)
}

func TestSweeperStopIsIdempotent(t *testing.T) {
	sweeper := NewSweeper("test", time.Second, func(ctx context.Context) (int64, error) {
		return 0, nil
	}, nil)

	sweeper.Start(context.Background())
	sweeper.Stop()
	sweeper.Stop()
	// restarting after stop is not supported; Start is a no-op
	sweeper.Start(context.Background())
}
