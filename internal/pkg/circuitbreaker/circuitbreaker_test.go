package circuitbreaker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/YouSangSon/movie-catalog-service/internal/pkg/circuitbreaker"
	"github.com/stretchr/testify/assert"
)

var errNotFound = errors.New("not found")

func TestCircuitBreaker_Closed_Success(t *testing.T) {
	// Arrange
	cb := circuitbreaker.NewCircuitBreaker("test", circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
	})

	// Act
	result, err := cb.Execute(context.Background(), func() (interface{}, error) {
		return "success", nil
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_OpenAfterFailures(t *testing.T) {
	// Arrange
	var transitions []circuitbreaker.State
	cb := circuitbreaker.NewCircuitBreaker("test", circuitbreaker.Config{
		Timeout: time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			transitions = append(transitions, to)
		},
	})
	ctx := context.Background()
	failFunc := func() (interface{}, error) {
		return nil, errors.New("test error")
	}

	// Act
	for i := 0; i < 3; i++ {
		_, err := cb.Execute(ctx, failFunc)
		assert.Error(t, err)
	}

	// Assert
	assert.Equal(t, circuitbreaker.StateOpen, cb.State())
	assert.Equal(t, []circuitbreaker.State{circuitbreaker.StateOpen}, transitions)

	_, err := cb.Execute(ctx, failFunc)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}

func TestCircuitBreaker_HalfOpen_Recovery(t *testing.T) {
	// Arrange
	cb := circuitbreaker.NewCircuitBreaker("test", circuitbreaker.Config{
		MaxRequests: 2,
		Timeout:     50 * time.Millisecond,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(ctx, func() (interface{}, error) { return nil, errors.New("boom") })
	}
	assert.Equal(t, circuitbreaker.StateOpen, cb.State())

	// Act
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, circuitbreaker.StateHalfOpen, cb.State())

	for i := 0; i < 2; i++ {
		_, err := cb.Execute(ctx, func() (interface{}, error) { return "ok", nil })
		assert.NoError(t, err)
	}

	// Assert
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_IsSuccessfulIgnoresClassifiedErrors(t *testing.T) {
	// Arrange
	cb := circuitbreaker.NewCircuitBreaker("test", circuitbreaker.Config{
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errNotFound)
		},
	})

	// Act
	for i := 0; i < 5; i++ {
		_, err := cb.Execute(context.Background(), func() (interface{}, error) {
			return nil, errNotFound
		})
		assert.ErrorIs(t, err, errNotFound)
	}

	// Assert
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
	assert.Equal(t, uint32(5), cb.Counts().TotalSuccesses)
}

func TestCircuitBreaker_CallerCancellationIsNotAFailure(t *testing.T) {
	// Arrange
	cb := circuitbreaker.NewCircuitBreaker("test", circuitbreaker.Config{
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	_, err := cb.Execute(ctx, func() (interface{}, error) {
		return nil, ctx.Err()
	})

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, circuitbreaker.StateClosed, cb.State())
	assert.Equal(t, uint32(0), cb.Counts().TotalFailures)
}

func TestRun_TypedResult(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker("typed", circuitbreaker.Config{})

	value, err := circuitbreaker.Run(context.Background(), cb, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestCircuitBreaker_Counts(t *testing.T) {
	// Arrange
	cb := circuitbreaker.NewCircuitBreaker("test", circuitbreaker.Config{
		MaxRequests: 10,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
	})
	ctx := context.Background()

	// Act
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(ctx, func() (interface{}, error) { return "success", nil })
	}
	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(ctx, func() (interface{}, error) { return nil, errors.New("test error") })
	}

	// Assert
	counts := cb.Counts()
	assert.Equal(t, uint32(5), counts.Requests)
	assert.Equal(t, uint32(3), counts.TotalSuccesses)
	assert.Equal(t, uint32(2), counts.TotalFailures)
	assert.Equal(t, uint32(2), counts.ConsecutiveFailures)
	assert.Equal(t, "closed", cb.State().String())
}
