// Package task holds the task variants and the in-memory task list.
package task

import "fmt"

// Kind identifies a task variant.
type Kind string

const (
	KindToDo     Kind = "todo"
	KindDeadline Kind = "deadline"
	KindEvent    Kind = "event"
)

// Task is a single entry in the task list. Only the fields relevant to
// its Kind are populated: By for deadlines, From/To for events. Time
// fields are free text and stored verbatim.
type Task struct {
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
	By          string `json:"by,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
}

// NewToDo creates a plain todo task.
func NewToDo(description string) Task {
	return Task{Kind: KindToDo, Description: description}
}

// NewDeadline creates a deadline task due at the given free-text instant.
func NewDeadline(description, by string) Task {
	return Task{Kind: KindDeadline, Description: description, By: by}
}

// NewEvent creates an event task spanning two free-text time markers.
func NewEvent(description, from, to string) Task {
	return Task{Kind: KindEvent, Description: description, From: from, To: to}
}

// MarkDone sets the completion flag.
func (t *Task) MarkDone() {
	t.Done = true
}

// MarkNotDone clears the completion flag.
func (t *Task) MarkNotDone() {
	t.Done = false
}

func (t Task) statusIcon() string {
	if t.Done {
		return "X"
	}
	return " "
}

// String renders the task in the fixed console format, e.g.
// "[D][X] return book (by: Sunday)".
func (t Task) String() string {
	switch t.Kind {
	case KindDeadline:
		return fmt.Sprintf("[D][%s] %s (by: %s)", t.statusIcon(), t.Description, t.By)
	case KindEvent:
		return fmt.Sprintf("[E][%s] %s (from: %s to: %s)", t.statusIcon(), t.Description, t.From, t.To)
	default:
		return fmt.Sprintf("[T][%s] %s", t.statusIcon(), t.Description)
	}
}
