package character

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// Task is one unit of submitted work, usually a single orchestrator call
type Task func(ctx context.Context) error

// Pending is the completion handle of a submitted task
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func (p *Pending) finish(err error) {
	p.err = err
	close(p.done)
}

// Done is closed once the task has applied or failed
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Err returns the task's result. It is nil until Done is closed.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the task finishes or ctx ends. Giving up on the wait
// does not cancel the task.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "stopped waiting for submitted task")
	}
}

type job struct {
	ctx     context.Context
	task    Task
	pending *Pending
}

// Dispatcher runs submitted tasks asynchronously. Tasks for one character
// run one at a time in submission order; different characters run
// independently of each other.
type Dispatcher struct {
	mu     sync.Mutex
	lanes  map[string][]job
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates an idle dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		lanes: make(map[string][]job),
	}
}

// Submit queues task behind any pending work for characterID and returns
// immediately. The task runs with ctx's values but not its cancellation:
// once submitted it either fully applies or fully fails.
func (d *Dispatcher) Submit(ctx context.Context, characterID string, task Task) *Pending {
	p := newPending()
	if task == nil {
		p.finish(errors.InvalidArgument("task is required"))
		return p
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		p.finish(errors.FailedPrecondition("dispatcher is closed"))
		return p
	}

	queue, running := d.lanes[characterID]
	d.lanes[characterID] = append(queue, job{
		ctx:     context.WithoutCancel(ctx),
		task:    task,
		pending: p,
	})
	if !running {
		d.wg.Add(1)
		go d.drain(characterID)
	}
	return p
}

// drain runs a lane until it is empty, then retires it
func (d *Dispatcher) drain(characterID string) {
	defer d.wg.Done()

	for {
		d.mu.Lock()
		queue := d.lanes[characterID]
		if len(queue) == 0 {
			delete(d.lanes, characterID)
			d.mu.Unlock()
			return
		}
		next := queue[0]
		queue[0] = job{}
		d.lanes[characterID] = queue[1:]
		d.mu.Unlock()

		next.pending.finish(run(next, characterID))
	}
}

func run(j job, characterID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(j.ctx, "submitted task panicked",
				"character_id", characterID,
				"panic", r)
			err = errors.Internalf("submitted task panicked: %v", r)
		}
	}()
	return j.task(j.ctx)
}

// Close stops accepting work and waits for queued tasks to finish, or for
// ctx to end
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		d.wg.Wait()
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "dispatcher did not drain")
	}
}
