package character_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/orchestrators/character"
)

func TestDispatcherRunsLaneInSubmissionOrder(t *testing.T) {
	d := character.NewDispatcher()

	var (
		mu    sync.Mutex
		order []int
	)
	release := make(chan struct{})

	var pending []*character.Pending
	for i := 0; i < 20; i++ {
		i := i
		pending = append(pending, d.Submit(context.Background(), "char-1", func(context.Context) error {
			if i == 0 {
				<-release
			}
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}))
	}
	close(release)

	for _, p := range pending {
		require.NoError(t, p.Wait(context.Background()))
	}

	expected := make([]int, 20)
	for i := range expected {
		expected[i] = i
	}
	assert.Equal(t, expected, order)
}

func TestDispatcherLanesAreIndependent(t *testing.T) {
	d := character.NewDispatcher()

	blocked := make(chan struct{})
	slow := d.Submit(context.Background(), "char-slow", func(context.Context) error {
		<-blocked
		return nil
	})

	fast := d.Submit(context.Background(), "char-fast", func(context.Context) error {
		return nil
	})

	select {
	case <-fast.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("task on an idle character waited behind another character")
	}
	assert.NoError(t, fast.Err())

	select {
	case <-slow.Done():
		t.Fatal("blocked task finished early")
	default:
	}
	assert.NoError(t, slow.Err(), "Err is nil before the task finishes")

	close(blocked)
	assert.NoError(t, slow.Wait(context.Background()))
}

func TestDispatcherReturnsTaskError(t *testing.T) {
	d := character.NewDispatcher()

	p := d.Submit(context.Background(), "char-1", func(context.Context) error {
		return errors.NotFound("character not found")
	})

	err := p.Wait(context.Background())
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(p.Err()))
}

func TestDispatcherRecoversPanics(t *testing.T) {
	d := character.NewDispatcher()

	p := d.Submit(context.Background(), "char-1", func(context.Context) error {
		panic("boom")
	})
	err := p.Wait(context.Background())
	assert.True(t, errors.IsInternal(err))
	assert.Contains(t, err.Error(), "boom")

	next := d.Submit(context.Background(), "char-1", func(context.Context) error { return nil })
	assert.NoError(t, next.Wait(context.Background()), "the lane keeps running after a panic")
}

func TestDispatcherIgnoresCallerCancellation(t *testing.T) {
	d := character.NewDispatcher()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	proceed := make(chan struct{})

	p := d.Submit(ctx, "char-1", func(taskCtx context.Context) error {
		close(started)
		<-proceed
		return taskCtx.Err()
	})

	<-started
	cancel()

	err := p.Wait(ctx)
	assert.True(t, errors.IsCanceled(err), "the caller stops waiting")

	close(proceed)
	<-p.Done()
	assert.NoError(t, p.Err(), "the task itself still completes")
}

func TestDispatcherRejectsNilTask(t *testing.T) {
	d := character.NewDispatcher()

	err := d.Submit(context.Background(), "char-1", nil).Wait(context.Background())
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestDispatcherCloseDrainsAndRejects(t *testing.T) {
	d := character.NewDispatcher()

	var ran bool
	p := d.Submit(context.Background(), "char-1", func(context.Context) error {
		time.Sleep(10 * time.Millisecond)
		ran = true
		return nil
	})

	require.NoError(t, d.Close(context.Background()))
	assert.True(t, ran)
	assert.NoError(t, p.Err())

	err := d.Submit(context.Background(), "char-1", func(context.Context) error { return nil }).
		Wait(context.Background())
	assert.True(t, errors.IsFailedPrecondition(err))
}

func TestDispatcherCloseTimesOut(t *testing.T) {
	d := character.NewDispatcher()

	blocked := make(chan struct{})
	defer close(blocked)
	d.Submit(context.Background(), "char-1", func(context.Context) error {
		<-blocked
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := d.Close(ctx)
	assert.True(t, errors.IsCanceled(err))
}
