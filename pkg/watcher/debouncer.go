package watcher

import (
	"context"
	"time"
)

// Debouncer collapses bursts of file events into a single reload trigger.
// An event is released after quietPeriod with no further activity, or after
// maxWait regardless, so a stream of rapid saves cannot starve reloads.
type Debouncer struct {
	input       <-chan ChangeEvent
	output      chan ChangeEvent
	quietPeriod time.Duration
	maxWait     time.Duration
}

// NewDebouncer wraps an event stream with debouncing.
func NewDebouncer(input <-chan ChangeEvent, quietPeriod, maxWait time.Duration) *Debouncer {
	return &Debouncer{
		input:       input,
		output:      make(chan ChangeEvent, 4),
		quietPeriod: quietPeriod,
		maxWait:     maxWait,
	}
}

// Events returns the debounced stream.
func (d *Debouncer) Events() <-chan ChangeEvent {
	return d.output
}

// Start begins processing. The loop runs until the context is cancelled or
// the input channel closes.
func (d *Debouncer) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Debouncer) run(ctx context.Context) {
	defer close(d.output)

	var (
		pending  *ChangeEvent
		quiet    <-chan time.Time
		deadline <-chan time.Time
	)

	flush := func() {
		if pending == nil {
			return
		}
		select {
		case d.output <- *pending:
		default:
		}
		pending = nil
		quiet = nil
		deadline = nil
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-d.input:
			if !ok {
				flush()
				return
			}
			if pending == nil {
				deadline = time.After(d.maxWait)
			}
			pending = &ev
			quiet = time.After(d.quietPeriod)

		case <-quiet:
			flush()

		case <-deadline:
			flush()
		}
	}
}
