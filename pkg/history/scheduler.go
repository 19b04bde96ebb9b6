package history

import "sync"

// Scheduler defers a task to a later turn of the host's loop.
type Scheduler interface {
	Post(task func())
}

// TaskQueue is a cooperative Scheduler. Posted tasks run when the host calls
// RunPending, never from within Post.
type TaskQueue struct {
	mu      sync.Mutex
	pending []func()
}

// NewTaskQueue returns an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// Post queues task for the next RunPending call.
func (q *TaskQueue) Post(task func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, task)
}

// Pending returns the number of queued tasks.
func (q *TaskQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// RunPending runs the tasks queued before the call, in posting order, and
// returns how many ran. Tasks posted while running wait for the next call.
func (q *TaskQueue) RunPending() int {
	q.mu.Lock()
	tasks := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, task := range tasks {
		task()
	}
	return len(tasks)
}

var _ Scheduler = (*TaskQueue)(nil)
