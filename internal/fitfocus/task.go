package fitfocus

import "context"

// Task is one asynchronous advisor call. The caller keeps working while it
// runs and may cancel it; a cancelled call resolves to its fallback text.
type Task struct {
	done   chan struct{}
	cancel context.CancelFunc
	result string
}

// StartTask runs fn on its own goroutine with a cancellable child of ctx.
func StartTask(ctx context.Context, fn func(ctx context.Context) string) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(t.done)
		defer cancel()
		t.result = fn(ctx)
	}()
	return t
}

// Cancel asks the call to stop. It is safe to call more than once.
func (t *Task) Cancel() { t.cancel() }

// Done is closed once the result is available.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the call resolves and returns its text.
func (t *Task) Wait() string {
	<-t.done
	return t.result
}
