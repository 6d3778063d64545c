package model

import "fmt"

// Status labels shown next to each task.
const (
	StatusDone    = "Completada"
	StatusPending = "Pendiente"
)

// Task is a single to-do entry. It carries no id; its position in the
// owning list identifies it.
type Task struct {
	Description string
	Completed   bool
}

// New returns a pending task. The description is taken as-is.
func New(description string) Task {
	return Task{Description: description}
}

// MarkCompleted flags the task as done. Calling it again changes nothing.
func (t *Task) MarkCompleted() {
	t.Completed = true
}

func (t Task) String() string {
	status := StatusPending
	if t.Completed {
		status = StatusDone
	}
	return fmt.Sprintf("%s - %s", t.Description, status)
}
