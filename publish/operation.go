package publish

import (
	"context"
	"fmt"
	"sync"

	draugrerrors "github.com/Mahdiglm/draugr-deploy/errors"
)

// Status is the lifecycle of one publish.
type Status int

const (
	Idle Status = iota
	InProgress
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case InProgress:
		return "in-progress"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of a publish. Err is nil on success.
type Result struct {
	Err error
}

// Operation runs a publisher once. It moves Idle -> InProgress -> Succeeded
// or Failed and never leaves a terminal state.
type Operation struct {
	publisher Publisher

	mu     sync.Mutex
	status Status
}

func NewOperation(p Publisher) *Operation {
	return &Operation{publisher: p}
}

// Start launches the publish on its own goroutine. The returned channel
// delivers exactly one Result and is then closed. Cancelling ctx after Start
// does not abort the publish. Starting an operation twice delivers an error
// and leaves the first run untouched.
func (o *Operation) Start(ctx context.Context, cfg Config) <-chan Result {
	results := make(chan Result, 1)

	o.mu.Lock()
	if o.status != Idle {
		status := o.status
		o.mu.Unlock()
		results <- Result{Err: draugrerrors.New(draugrerrors.ErrCodeInternal,
			fmt.Sprintf("publish already %s", status))}
		close(results)
		return results
	}
	o.status = InProgress
	o.mu.Unlock()

	runCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(results)
		err := o.publisher.Publish(runCtx, cfg)
		o.finish(err)
		results <- Result{Err: err}
	}()

	return results
}

func (o *Operation) finish(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.status = Failed
	} else {
		o.status = Succeeded
	}
}

func (o *Operation) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Start runs p once. See Operation.Start.
func Start(ctx context.Context, p Publisher, cfg Config) <-chan Result {
	return NewOperation(p).Start(ctx, cfg)
}
