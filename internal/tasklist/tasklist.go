// Package tasklist holds the ordered task list and keeps its backing file
// in step with every change.
package tasklist

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tareas/internal/logging"
	"github.com/idilsaglam/tareas/internal/model"
	"github.com/idilsaglam/tareas/internal/store/jsonstore"
)

// EmptyMessage is the single line Lines returns for an empty list.
const EmptyMessage = "No hay tareas pendientes."

// ErrNoTask is returned when an index does not name a task in the list.
var ErrNoTask = errors.New("no task at that position")

// TaskList is an ordered list of tasks bound to one backing file.
// Positions are zero-based and are the only task identifier.
type TaskList struct {
	store *jsonstore.Store
	tasks []model.Task
	log   *log.Logger
}

type Option func(*TaskList)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(tl *TaskList) {
		if l != nil {
			tl.log = l
		}
	}
}

// New binds the list to path and loads it. A missing file yields an empty
// list and is not created until the first change. Any other load failure is
// returned as is.
func New(path string, opts ...Option) (*TaskList, error) {
	tl := &TaskList{
		store: jsonstore.New(path),
		log:   logging.Discard(),
	}
	for _, o := range opts {
		o(tl)
	}
	if err := tl.Load(); err != nil {
		if !errors.Is(err, jsonstore.ErrNotFound) {
			return nil, err
		}
		tl.log.Debug("no backing file, starting empty", "path", tl.store.Path())
		tl.tasks = []model.Task{}
	}
	return tl, nil
}

// Path returns the backing file path.
func (tl *TaskList) Path() string { return tl.store.Path() }

func (tl *TaskList) Len() int { return len(tl.tasks) }

// Tasks returns a copy of the tasks in list order.
func (tl *TaskList) Tasks() []model.Task {
	out := make([]model.Task, len(tl.tasks))
	copy(out, tl.tasks)
	return out
}

// Add appends a pending task and persists the list.
func (tl *TaskList) Add(description string) error {
	tl.tasks = append(tl.tasks, model.New(description))
	return tl.Save()
}

// MarkCompleted completes the task at index and persists the list.
func (tl *TaskList) MarkCompleted(index int) error {
	if err := tl.check(index); err != nil {
		return err
	}
	tl.tasks[index].MarkCompleted()
	return tl.Save()
}

// Remove deletes the task at index; later tasks move up one position.
func (tl *TaskList) Remove(index int) error {
	if err := tl.check(index); err != nil {
		return err
	}
	tl.tasks = append(tl.tasks[:index], tl.tasks[index+1:]...)
	return tl.Save()
}

// Lines renders the list as "<index>. <task>" lines, or EmptyMessage alone.
func (tl *TaskList) Lines() []string {
	if len(tl.tasks) == 0 {
		return []string{EmptyMessage}
	}
	out := make([]string, 0, len(tl.tasks))
	for i, t := range tl.tasks {
		out = append(out, fmt.Sprintf("%d. %s", i, t))
	}
	return out
}

// Stats counts completed and pending tasks.
func (tl *TaskList) Stats() (done, pending int) {
	for _, t := range tl.tasks {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Save writes the whole list to the backing file.
func (tl *TaskList) Save() error {
	if err := tl.store.Save(tl.tasks); err != nil {
		return fmt.Errorf("save %s: %w", tl.store.Path(), err)
	}
	tl.log.Debug("saved", "path", tl.store.Path(), "tasks", len(tl.tasks))
	return nil
}

// Load replaces the in-memory list with the backing file's content.
// On failure the in-memory list is left untouched.
func (tl *TaskList) Load() error {
	tasks, err := tl.store.Load()
	if err != nil {
		return fmt.Errorf("load %s: %w", tl.store.Path(), err)
	}
	tl.tasks = tasks
	tl.log.Debug("loaded", "path", tl.store.Path(), "tasks", len(tasks))
	return nil
}

func (tl *TaskList) check(index int) error {
	if index < 0 || index >= len(tl.tasks) {
		return fmt.Errorf("%w: %d (have %d)", ErrNoTask, index, len(tl.tasks))
	}
	return nil
}
