package workspace

import (
	"fmt"
	"slices"

	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/model"
	"github.com/manav03panchal/boost/internal/validate"
)

// AddTask creates an open task on day and puts it at the top of the list.
// Minutes of zero or less fall back to the default estimate.
func (w *Workspace) AddTask(title string, minutes int, priority model.Priority, day model.DayKey) (model.Task, error) {
	title, err := FormatTitle(title)
	if err != nil {
		return model.Task{}, err
	}
	if priority == "" {
		priority = model.PriorityMedium
	}
	if day == "" {
		day = w.Today()
	}

	task := model.NewTask(title, minutes, priority, day)
	if err := validate.Struct(task); err != nil {
		return model.Task{}, err
	}

	tasks := append([]model.Task{task}, w.tasks...)
	if err := w.store.SaveTasks(tasks); err != nil {
		return model.Task{}, err
	}
	w.tasks = tasks
	return task, nil
}

// FindTask resolves ref to a task index.
func (w *Workspace) FindTask(ref string) (int, error) {
	i, err := matchIndex(len(w.tasks), func(i int) string { return w.tasks[i].ID }, ref)
	if err != nil {
		return -1, err
	}
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", errors.ErrTaskNotFound, ref)
	}
	return i, nil
}

// ToggleTask flips a task's completion.
func (w *Workspace) ToggleTask(ref string) (model.Task, error) {
	i, err := w.FindTask(ref)
	if err != nil {
		return model.Task{}, err
	}

	tasks := slices.Clone(w.tasks)
	tasks[i].Completed = !tasks[i].Completed
	if err := w.store.SaveTasks(tasks); err != nil {
		return model.Task{}, err
	}
	w.tasks = tasks
	return tasks[i], nil
}

// DeleteTask removes a task.
func (w *Workspace) DeleteTask(ref string) (model.Task, error) {
	i, err := w.FindTask(ref)
	if err != nil {
		return model.Task{}, err
	}

	removed := w.tasks[i]
	tasks := slices.Delete(slices.Clone(w.tasks), i, i+1)
	if err := w.store.SaveTasks(tasks); err != nil {
		return model.Task{}, err
	}
	w.tasks = tasks
	return removed, nil
}

// ClearCompleted removes every completed task and reports how many went.
func (w *Workspace) ClearCompleted() (int, error) {
	tasks := slices.DeleteFunc(slices.Clone(w.tasks), func(t model.Task) bool {
		return t.Completed
	})
	removed := len(w.tasks) - len(tasks)
	if removed == 0 {
		return 0, nil
	}
	if err := w.store.SaveTasks(tasks); err != nil {
		return 0, err
	}
	w.tasks = tasks
	return removed, nil
}

// TasksOn returns the tasks scheduled on day, in list order.
func (w *Workspace) TasksOn(day model.DayKey) []model.Task {
	var out []model.Task
	for _, t := range w.tasks {
		if t.Date == day {
			out = append(out, t)
		}
	}
	return out
}

// TaskFilter selects tasks by completion.
type TaskFilter string

const (
	FilterAll       TaskFilter = "all"
	FilterActive    TaskFilter = "active"
	FilterCompleted TaskFilter = "completed"
)

// Filter returns the tasks matching f. Unknown filters match everything.
func Filter(tasks []model.Task, f TaskFilter) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		switch {
		case f == FilterActive && t.Completed:
			continue
		case f == FilterCompleted && !t.Completed:
			continue
		}
		out = append(out, t)
	}
	return out
}
