// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"influencer-search-workers/internal/common/config"
	"influencer-search-workers/internal/common/errors"
)

var fastRetry = &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), fastRetry, "topology", func(context.Context) error {
		calls++
		if calls < 3 {
			return stderrors.New("rpc error: code = Unavailable")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_Exhausted(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), fastRetry, "topology", func(context.Context) error {
		calls++
		return stderrors.New("dial tcp: connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeBrokerUnavailable, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Equal(t, "topology", stdErr.Metadata["operation"])
}

func TestWithRetry_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0
	permanent := stderrors.New("permission denied")
	err := withRetry(context.Background(), fastRetry, "topology", func(context.Context) error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	slow := &RetryConfig{MaxRetries: 3, BaseDelay: time.Hour, MaxDelay: time.Hour}

	err := withRetry(ctx, slow, "topology", func(context.Context) error {
		cancel()
		return stderrors.New("timeout")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(stderrors.New("context deadline exceeded")))
	assert.True(t, isRetryableZeebeError(stderrors.New("Connection Reset by peer")))
	assert.False(t, isRetryableZeebeError(stderrors.New("NOT_FOUND: no such job")))
}

func TestClientConfigFrom(t *testing.T) {
	cc := ClientConfigFrom(config.CamundaConfig{
		BrokerAddress:  "zeebe:26500",
		UsePlaintext:   true,
		RequestTimeout: 1500,
	})

	assert.Equal(t, "zeebe:26500", cc.GatewayAddress)
	assert.True(t, cc.UsePlaintextConnection)
	assert.Equal(t, 1500*time.Millisecond, cc.RequestTimeout)
	assert.Same(t, DefaultRetryConfig, cc.RetryConfig)
}
