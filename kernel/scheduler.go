package kernel

import (
	"errors"
	"fmt"
)

const maxTasks = 8

type TaskID uint8

// Task is a cooperative unit of execution. Step must return promptly; it
// shares its core with every other task on the same scheduler.
type Task interface {
	Step() error
}

// TaskFunc adapts a function to Task.
type TaskFunc func() error

func (f TaskFunc) Step() error { return f() }

var ErrTooManyTasks = errors.New("kernel: too many tasks")

// TaskError reports which task stopped the scheduler.
type TaskError struct {
	Task TaskID
	Err  error
}

func (e *TaskError) Error() string { return fmt.Sprintf("task %d: %v", e.Task, e.Err) }
func (e *TaskError) Unwrap() error { return e.Err }

// Scheduler is a minimal round-robin cooperative scheduler for one core.
type Scheduler struct {
	tasks     [maxTasks]Task
	taskCount TaskID
	rr        TaskID
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AddTask registers a task and returns its ID.
func (s *Scheduler) AddTask(t Task) (TaskID, error) {
	if t == nil {
		return 0, errors.New("kernel: nil task")
	}
	if s.taskCount >= maxTasks {
		return 0, ErrTooManyTasks
	}
	id := s.taskCount
	s.taskCount++
	s.tasks[id] = t
	return id, nil
}

// Step runs one step of the next task in round-robin order.
func (s *Scheduler) Step() error {
	if s.taskCount == 0 {
		return nil
	}

	id := s.rr
	s.rr = (id + 1) % s.taskCount
	if err := s.tasks[id].Step(); err != nil {
		return &TaskError{Task: id, Err: err}
	}
	return nil
}

// Run steps tasks forever without yielding. It only returns when a task
// fails, and the error is a *TaskError.
//
// Run owns its core. On TinyGo the firmware must be built with
// -scheduler=cores, otherwise goroutines sharing the core starve.
func (s *Scheduler) Run() error {
	for {
		if err := s.Step(); err != nil {
			return err
		}
	}
}
