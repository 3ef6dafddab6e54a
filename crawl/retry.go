package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/zhextract"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc reports a retry.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch once, then once more after each delay while
// it keeps failing. Missing pages (ENOTFOUND) and bad requests (EINVALID)
// fail at once. The last error is returned.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logf LogFunc, delays []time.Duration) (string, error) {
	markup, err := fetch(ctx, url)
	for i := 0; err != nil && retryable(err) && i < len(delays); i++ {
		if logf != nil {
			logf("retry %s (attempt %d): %v", url, i+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[i]):
		}

		markup, err = fetch(ctx, url)
	}
	if err != nil {
		return "", err
	}
	return markup, nil
}

func retryable(err error) bool {
	switch zhextract.ErrorCode(err) {
	case zhextract.ENOTFOUND, zhextract.EINVALID:
		return false
	}
	return true
}
