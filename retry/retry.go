// Package retry runs an operation a bounded number of times with a
// fixed sleep between attempts. There is no backoff growth: the services
// we wait on (Elasticsearch, Kibana) are either coming up or they
// aren't.
package retry

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Do calls f up to attempts times, sleeping interval between attempts.
// The sleep is context-aware, so cancellation wins over the timer. The
// last error is returned after exhaustion.
func Do(ctx context.Context, attempts int, interval time.Duration, f func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(interval):
			}
		}

		if err = f(); err == nil {
			return nil
		}
		if attempt < attempts {
			log.Printf("attempt %d of %d failed: %v; retrying in %s", attempt, attempts, err, interval)
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", attempts, err)
}
