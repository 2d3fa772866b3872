package util

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// StopRetryingError stops Retry immediately; the callback wraps it to give up
// on errors which will not go away.
var StopRetryingError = NewError("stop retrying")

// Retry calls f until it succeeds, max attempts were made or ctx is done. max
// 0 retries forever. The last error of f is returned.
func Retry(ctx context.Context, max uint, interval time.Duration, f func(int) error) error {
	var err error

	for i := 0; max < 1 || uint(i) < max; i++ {
		if err = f(i); err == nil {
			return nil
		} else if errors.Is(err, StopRetryingError) {
			return err
		}

		if interval < 1 {
			continue
		}

		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), err.Error())
		case <-time.After(interval):
		}
	}

	return err
}
