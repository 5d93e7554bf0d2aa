package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piresc/secureword/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func fastConfig() Config {
	return Config{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Multiplier: 2,
	}
}

func TestRetrier_SucceedsAfterFailures(t *testing.T) {
	r := New(fastConfig(), logger.NewNopLogger())
	calls := 0

	err := r.Execute(context.Background(), "connect redis", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetrier_GivesUp(t *testing.T) {
	r := New(fastConfig(), logger.NewNopLogger())
	errDown := errors.New("connection refused")
	calls := 0

	err := r.Execute(context.Background(), "connect postgres", func(ctx context.Context) error {
		calls++
		return errDown
	})

	assert.ErrorIs(t, err, errDown)
	assert.Contains(t, err.Error(), "connect postgres")
	assert.Equal(t, 3, calls)
}

func TestRetrier_StopsOnCancelledContext(t *testing.T) {
	r := New(fastConfig(), logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Execute(ctx, "connect nsq", func(ctx context.Context) error {
		t.Fatal("should not be called")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetrier_DelayIsCapped(t *testing.T) {
	r := New(Config{BaseDelay: time.Second, MaxDelay: 2 * time.Second, Multiplier: 10}, logger.NewNopLogger())

	assert.Equal(t, time.Second, r.calculateDelay(0))
	assert.Equal(t, 2*time.Second, r.calculateDelay(3))
}
