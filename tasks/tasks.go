// Package tasks holds the status contract between pipeline stages and the
// driver: a stage either completed or wants to be polled again.
package tasks

type TaskStatus int

const (
	Incomplete TaskStatus = iota
	Complete
)

// Task is one named pipeline stage. Fn is re-invoked until it reports
// Complete; Incomplete means "requeue me", not an error.
type Task struct {
	Name string
	Fn   func() TaskStatus
	done bool
}

// TaskList executes an ordered set of stages per cycle, re-polling stages
// that return Incomplete. Stage order within the list is a correctness
// contract (e.g. sends must be issued before receives are polled).
type TaskList struct {
	tasks []*Task
}

func (tl *TaskList) AddTask(name string, fn func() TaskStatus) {
	tl.tasks = append(tl.tasks, &Task{Name: name, Fn: fn})
}

// DoAvailable makes one pass over the list, running every not-yet-done stage
// whose predecessors are all done, and reports whether the whole list
// completed. Callers loop until it returns true, so a stalled stage shows up
// as an endless Incomplete, never as partial progress of later stages.
func (tl *TaskList) DoAvailable() bool {
	alldone := true
	for _, t := range tl.tasks {
		if t.done {
			continue
		}
		if t.Fn() == Complete {
			t.done = true
			continue
		}
		// stages after an incomplete one must wait for it
		alldone = false
		break
	}
	return alldone && len(tl.tasks) > 0
}

// Reset marks every stage not-done for the next cycle
func (tl *TaskList) Reset() {
	for _, t := range tl.tasks {
		t.done = false
	}
}

func (tl *TaskList) Empty() bool { return len(tl.tasks) == 0 }
