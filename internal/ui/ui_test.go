package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bibi-cli/bibi/internal/task"
)

func TestRuleWidth(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, 10).Rule()
	if got := buf.String(); got != strings.Repeat("-", 10)+"\n" {
		t.Errorf("Rule: got %q", got)
	}
}

func TestTaskAdded(t *testing.T) {
	var buf bytes.Buffer
	u := New(&buf, 10)

	u.TaskAdded(task.NewToDo("buy milk"), 3)

	out := buf.String()
	for _, want := range []string{
		"Got it. I've added this task:",
		"  [T][ ] buy milk",
		"Now you have 3 tasks in the list.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestListEmpty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, 10).List(task.NewList(nil))
	if !strings.Contains(buf.String(), "Your list is empty.") {
		t.Errorf("output: %q", buf.String())
	}
}

func TestListNumbersFromOne(t *testing.T) {
	var buf bytes.Buffer
	u := New(&buf, 10)

	u.List(task.NewList([]task.Task{
		task.NewToDo("a"),
		task.NewDeadline("b", "Sunday"),
	}))

	out := buf.String()
	if !strings.Contains(out, "1. [T][ ] a") {
		t.Errorf("missing first entry: %q", out)
	}
	if !strings.Contains(out, "2. [D][ ] b (by: Sunday)") {
		t.Errorf("missing second entry: %q", out)
	}
}

func TestMatchesFormat(t *testing.T) {
	var buf bytes.Buffer
	u := New(&buf, 10)

	u.Matches([]task.Match{
		{Index: 1, Task: task.NewToDo("buy milk")},
		{Index: 3, Task: task.NewToDo("bring milk bottle")},
	})

	out := buf.String()
	if !strings.Contains(out, "1: [T][ ] buy milk") {
		t.Errorf("missing first match: %q", out)
	}
	if !strings.Contains(out, "3: [T][ ] bring milk bottle") {
		t.Errorf("missing second match: %q", out)
	}
}

func TestMatchesEmpty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, 10).Matches(nil)
	if !strings.Contains(buf.String(), "No matching tasks found. Paranoid?") {
		t.Errorf("output: %q", buf.String())
	}
}

func TestUnknownCommandEchoesKeyword(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, 10).UnknownCommand("frobnicate")
	if !strings.Contains(buf.String(), `Unknown command: "frobnicate"`) {
		t.Errorf("output: %q", buf.String())
	}
}

func TestVisibleTasksFilter(t *testing.T) {
	done := task.NewToDo("done one")
	done.MarkDone()
	m := &tuiModel{
		tasks: []task.Task{
			task.NewToDo("pending one"),
			done,
			task.NewToDo("pending two"),
		},
	}

	all := m.visibleTasks()
	if len(all) != 3 {
		t.Fatalf("all: got %d, want 3", len(all))
	}

	m.filter = filterPending
	pending := m.visibleTasks()
	if len(pending) != 2 {
		t.Fatalf("pending: got %d, want 2", len(pending))
	}
	// Positions keep their original numbering.
	if pending[1].Index != 3 {
		t.Errorf("second pending index: got %d, want 3", pending[1].Index)
	}

	m.filter = filterDone
	doneOnly := m.visibleTasks()
	if len(doneOnly) != 1 || doneOnly[0].Index != 2 {
		t.Errorf("done: got %+v", doneOnly)
	}
}
