// Package asyncjob provides the bounded polling primitive used for
// asynchronous vendor jobs: a fixed number of attempts with a fixed
// inter-attempt delay, driven by the caller, with an explicit timeout
// error. There is no implicit or recursive retry anywhere else in the
// adapter layer.
package asyncjob

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Status is the observable state of an asynchronous vendor job.
type Status int

const (
	Pending Status = iota
	Done
	Failed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ErrPollTimeout is returned when a job is still pending after the
// configured number of attempts.
var ErrPollTimeout = errors.New("job still pending after polling budget exhausted")

// PollFunc checks the job once. Returning Done stops polling with
// success. Returning Failed stops polling; err should describe the
// failure. A non-nil err with Pending also stops polling: transport
// errors are not retried.
type PollFunc func(ctx context.Context) (Status, error)

// Poller drives a PollFunc with a fixed attempt budget.
type Poller struct {
	// MaxAttempts is the total number of checks. Default: 10.
	MaxAttempts int

	// Interval is the delay between checks. Default: 2s.
	Interval time.Duration
}

// Poll invokes fn until it reports Done or Failed, the attempt budget
// is exhausted (ErrPollTimeout), or ctx is cancelled.
func (p Poller) Poll(ctx context.Context, fn PollFunc) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 10
	}
	interval := p.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	for i := 0; i < attempts; i++ {
		status, err := fn(ctx)
		switch {
		case err != nil:
			return err
		case status == Done:
			return nil
		case status == Failed:
			return errors.New("job failed")
		}

		// Pending: wait out the interval unless this was the last attempt.
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return ErrPollTimeout
}
