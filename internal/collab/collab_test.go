package collab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithTimeoutOrNeutral_Success(t *testing.T) {
	v, ok := WithTimeoutOrNeutral(context.Background(), 50*time.Millisecond, nil, "test", func(ctx context.Context) (int, bool, error) {
		return 7, true, nil
	})
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestWithTimeoutOrNeutral_Error(t *testing.T) {
	v, ok := WithTimeoutOrNeutral(context.Background(), 50*time.Millisecond, nil, "test", func(ctx context.Context) (int, bool, error) {
		return 0, false, errors.New("boom")
	})
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestWithTimeoutOrNeutral_Timeout(t *testing.T) {
	v, ok := WithTimeoutOrNeutral(context.Background(), 5*time.Millisecond, nil, "test", func(ctx context.Context) (int, bool, error) {
		<-ctx.Done()
		return 0, false, nil
	})
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestWithTimeoutOrNeutral_NotFound(t *testing.T) {
	v, ok := WithTimeoutOrNeutral(context.Background(), 50*time.Millisecond, nil, "test", func(ctx context.Context) (int, bool, error) {
		return 0, false, nil
	})
	assert.False(t, ok)
	assert.Zero(t, v)
}

func TestThrottle_NilIsUnbounded(t *testing.T) {
	var th *Throttle
	assert.NoError(t, th.Wait(context.Background()))
}

func TestThrottle_AdmitsCallBeyondBurst(t *testing.T) {
	th := NewThrottle(1000, 1)
	ctx := context.Background()
	assert.NoError(t, th.Wait(ctx))
	assert.NoError(t, th.Wait(ctx))
}

func TestWithTimeoutOrNeutral_ContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v, ok := WithTimeoutOrNeutral(ctx, 50*time.Millisecond, nil, "test", func(ctx context.Context) (int, bool, error) {
		<-ctx.Done()
		return 1, true, nil
	})
	assert.False(t, ok)
	assert.Zero(t, v)
}
