// Package ui renders the fixed-format console messages and runs the
// interactive session loop.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/bibi-cli/bibi/internal/task"
)

// DefaultLineWidth is the width of the horizontal rule framing most
// command output.
const DefaultLineWidth = 60

// Ui writes the fixed-format messages for each command outcome.
type Ui struct {
	w         io.Writer
	lineWidth int
}

// New creates a Ui writing to w.
func New(w io.Writer, lineWidth int) *Ui {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	return &Ui{w: w, lineWidth: lineWidth}
}

// Rule prints the horizontal rule used to frame command output.
func (u *Ui) Rule() {
	fmt.Fprintln(u.w, strings.Repeat("-", u.lineWidth))
}

// Greeting prints the startup banner.
func (u *Ui) Greeting() {
	u.Rule()
	fmt.Fprintln(u.w, "Hello! I'm bibi.")
	fmt.Fprintln(u.w, "What can I do for you?")
	u.Rule()
}

// Exit prints the farewell message.
func (u *Ui) Exit() {
	u.Rule()
	fmt.Fprintln(u.w, "Bye. Hope to see you again soon!")
	u.Rule()
}

// TaskAdded reports a newly added task and the new list size.
func (u *Ui) TaskAdded(t task.Task, count int) {
	fmt.Fprintln(u.w, "Got it. I've added this task:")
	fmt.Fprintf(u.w, "  %s\n", t)
	fmt.Fprintf(u.w, "Now you have %d tasks in the list.\n", count)
}

// TaskRemoved reports a removed task and the new list size.
func (u *Ui) TaskRemoved(t task.Task, count int) {
	fmt.Fprintln(u.w, "Noted. I've removed this task:")
	fmt.Fprintf(u.w, "  %s\n", t)
	fmt.Fprintf(u.w, "Now you have %d tasks in the list.\n", count)
}

// TaskMarked reports a task marked as done.
func (u *Ui) TaskMarked(t task.Task) {
	fmt.Fprintln(u.w, "Nice! I've marked this task as done:")
	fmt.Fprintf(u.w, "  %s\n", t)
}

// TaskUnmarked reports a task marked as not done.
func (u *Ui) TaskUnmarked(t task.Task) {
	fmt.Fprintln(u.w, "OK, I've marked this task as not done yet:")
	fmt.Fprintf(u.w, "  %s\n", t)
}

// List prints every task with its 1-based position.
func (u *Ui) List(tasks *task.List) {
	u.Rule()
	if tasks.Count() == 0 {
		fmt.Fprintln(u.w, "Your list is empty.")
	} else {
		fmt.Fprintln(u.w, "Here are the tasks in your list:")
		for i := 0; i < tasks.Count(); i++ {
			fmt.Fprintf(u.w, "%d. %s\n", i+1, tasks.Get(i))
		}
	}
	u.Rule()
}

// Matches prints find results, one per line as "<index>: <task>".
func (u *Ui) Matches(matches []task.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(u.w, "No matching tasks found. Paranoid?")
		return
	}
	fmt.Fprintln(u.w, "Here are the matching tasks I found:")
	for _, m := range matches {
		fmt.Fprintf(u.w, "%d: %s\n", m.Index, m.Task)
	}
}

// InvalidSyntax prints the usage hint for a malformed argument string.
func (u *Ui) InvalidSyntax(hint string) {
	fmt.Fprintln(u.w, hint)
}

// InvalidIndex reports a syntactically valid but out-of-range index.
func (u *Ui) InvalidIndex() {
	fmt.Fprintln(u.w, "Invalid task index")
}

// UnknownCommand reports an unrecognised keyword.
func (u *Ui) UnknownCommand(keyword string) {
	u.Rule()
	fmt.Fprintf(u.w, "Unknown command: %q\n", keyword)
	u.Rule()
}

// Error prints an error message, used for persistence failures.
func (u *Ui) Error(msg string) {
	fmt.Fprintln(u.w, msg)
}
