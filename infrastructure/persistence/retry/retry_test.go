package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		Enabled:       true,
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadlock", &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}, true},
		{"lock wait timeout", &mysqlDriver.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}, true},
		{"duplicate key", &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"}, false},
		{"plain error", errors.New("boom"), false},
		{"deadlock by message", errors.New("driver: deadlock detected"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestExecuteRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteStopsOnBusinessError(t *testing.T) {
	sentinel := errors.New("validation failed")
	calls := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestExecuteGivesUpAfterMaxAttempts(t *testing.T) {
	deadlock := &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}
	calls := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		calls++
		return deadlock
	})
	assert.ErrorIs(t, err, deadlock)
	assert.Equal(t, 3, calls)
}

func TestExecuteDisabledRunsOnce(t *testing.T) {
	cfg := fastConfig()
	cfg.Enabled = false
	calls := 0
	err := Execute(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		return &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecuteHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Execute(ctx, fastConfig(), func(ctx context.Context) error {
		return &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoffIsBounded(t *testing.T) {
	cfg := fastConfig()
	for attempt := 1; attempt <= 10; attempt++ {
		delay := backoff(attempt, cfg)
		assert.GreaterOrEqual(t, delay, time.Duration(0))
		assert.LessOrEqual(t, delay, cfg.MaxDelay)
	}
}
