package hmsclient

import (
	"context"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// DefaultMaxRetries 为 1 表示最多尝试两次。
	DefaultMaxRetries = 1
	DefaultRetryDelay = 500 * time.Millisecond
)

// retry 只用于只读调用；写操作不重试，避免重复创建。
func retry[T any](ctx context.Context, maxRetries int, delay time.Duration, fn func() (T, error)) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return zero, err
		}
	}
	return zero, lastErr
}

// IsRetryable 判断错误是否属于连接层面的瞬时故障。
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return status.Code(err) == codes.Unavailable
}
