/*
Package loop is the task queue of the layout thread.

Views and actions are owned by a single goroutine, the layout thread.
Other goroutines must not touch them. They post tasks to a Loop instead,
and the layout thread drains the queue once per tick, before layout is
solved. Action events are delivered the same way, so event handlers never
run inside an action tick.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package loop

import (
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'motif.display'.
func tracer() tracing.Trace {
	return tracing.Select("motif.display")
}

// Task is a unit of work run on the layout thread.
type Task func()

// Loop is a thread-safe FIFO of tasks. The zero value is not usable,
// create loops with New.
type Loop struct {
	mu     sync.Mutex
	tasks  *linkedlistqueue.Queue
	closed bool
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{tasks: linkedlistqueue.New()}
}

// Post enqueues a task. It may be called from any goroutine. Posting to a
// closed loop drops the task and returns false.
func (l *Loop) Post(t Task) bool {
	if t == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.tasks.Enqueue(t)
	return true
}

// Len returns the number of waiting tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tasks.Size()
}

// RunPending runs the tasks which have been waiting at the time of the
// call and returns how many were run. Tasks posted by running tasks are
// left for the next call.
//
// RunPending must be called from the layout thread only.
func (l *Loop) RunPending() int {
	l.mu.Lock()
	n := l.tasks.Size()
	batch := make([]Task, 0, n)
	for i := 0; i < n; i++ {
		t, _ := l.tasks.Dequeue()
		batch = append(batch, t.(Task))
	}
	l.mu.Unlock()
	for _, t := range batch {
		l.run(t)
	}
	return len(batch)
}

func (l *Loop) run(t Task) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("task panicked: %v", r)
		}
	}()
	t()
}

// Close stops accepting tasks and discards waiting ones.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.tasks.Clear()
}
