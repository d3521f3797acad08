package group

import (
	"runtime"
	"sync/atomic"
)

type queueTask[T any] struct {
	Started int32
	F       func() T
	Result  chan T
}

// Wait blocks until the task's result is available.
//
// Each task may only be waited on once.
func (q *queueTask[T]) Wait() T {
	if atomic.SwapInt32(&q.Started, 1) == 0 {
		// No worker has picked up the task yet, so run it here.
		return q.F()
	}
	return <-q.Result
}

// A taskQueue runs one-shot tasks on a fixed number of Goroutines.
//
// Tasks are submitted in some order and waited on by a single consumer,
// usually in the same order, so results are consumed deterministically no
// matter which worker finishes first.
type taskQueue[T any] struct {
	queue chan *queueTask[T]
}

func newTaskQueue[T any](numWorkers int) *taskQueue[T] {
	if numWorkers == 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	res := &taskQueue[T]{
		queue: make(chan *queueTask[T], numWorkers*1000),
	}
	for i := 0; i < numWorkers; i++ {
		go res.worker()
	}
	return res
}

// Submit schedules fn to run on some worker.
func (q *taskQueue[T]) Submit(fn func() T) *queueTask[T] {
	task := &queueTask[T]{F: fn, Result: make(chan T, 1)}
	select {
	case q.queue <- task:
	default:
		// Prevent unbounded memory growth; the task will run when
		// it is waited on.
	}
	return task
}

// Close stops the workers once the remaining tasks are drained.
func (q *taskQueue[T]) Close() {
	close(q.queue)
}

func (q *taskQueue[T]) worker() {
	for task := range q.queue {
		if atomic.SwapInt32(&task.Started, 1) != 0 {
			// Task already started on the consuming thread.
			continue
		}
		task.Result <- task.F()
	}
}
