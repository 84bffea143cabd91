package task

import "testing"

func TestAddAndCount(t *testing.T) {
	l := NewList(nil)
	if l.Count() != 0 {
		t.Fatalf("Count: got %d, want 0", l.Count())
	}

	l.Add(NewToDo("buy milk"))
	l.Add(NewDeadline("return book", "Sunday"))
	l.Add(NewEvent("meeting", "2pm", "4pm"))

	if l.Count() != 3 {
		t.Fatalf("Count: got %d, want 3", l.Count())
	}
	last := l.Get(l.Count() - 1)
	if last.Kind != KindEvent || last.Description != "meeting" {
		t.Errorf("last task: got %v", last)
	}
}

func TestRemoveShiftsLaterTasks(t *testing.T) {
	l := NewList([]Task{
		NewToDo("a"),
		NewToDo("b"),
		NewToDo("c"),
	})

	removed, ok := l.Remove(2)
	if !ok {
		t.Fatal("Remove(2) failed")
	}
	if removed.Description != "b" {
		t.Errorf("removed: got %q, want %q", removed.Description, "b")
	}
	if l.Count() != 2 {
		t.Fatalf("Count: got %d, want 2", l.Count())
	}
	if l.Get(0).Description != "a" || l.Get(1).Description != "c" {
		t.Errorf("remaining: got %q, %q", l.Get(0).Description, l.Get(1).Description)
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	l := NewList([]Task{NewToDo("only")})

	for _, index := range []int{0, -1, 2} {
		if _, ok := l.Remove(index); ok {
			t.Errorf("Remove(%d): got ok, want failure", index)
		}
	}
	if l.Count() != 1 {
		t.Errorf("Count after failed removals: got %d, want 1", l.Count())
	}
}

func TestFind(t *testing.T) {
	l := NewList([]Task{
		NewToDo("buy milk"),
		NewToDo("call mom"),
		NewToDo("bring milk bottle"),
	})

	matches := l.Find("milk")
	if len(matches) != 2 {
		t.Fatalf("matches: got %d, want 2", len(matches))
	}
	if matches[0].Index != 1 || matches[0].Task.Description != "buy milk" {
		t.Errorf("first match: got %d %q", matches[0].Index, matches[0].Task.Description)
	}
	if matches[1].Index != 3 || matches[1].Task.Description != "bring milk bottle" {
		t.Errorf("second match: got %d %q", matches[1].Index, matches[1].Task.Description)
	}
}

func TestFindIsCaseSensitive(t *testing.T) {
	l := NewList([]Task{NewToDo("Buy Milk")})
	if matches := l.Find("milk"); len(matches) != 0 {
		t.Errorf("matches: got %d, want 0", len(matches))
	}
}

func TestMarkRoundTrip(t *testing.T) {
	l := NewList([]Task{NewDeadline("return book", "Sunday")})

	before := *l.Get(0)
	l.Get(0).MarkDone()
	if !l.Get(0).Done {
		t.Fatal("MarkDone: task not done")
	}
	l.Get(0).MarkNotDone()

	after := *l.Get(0)
	if after != before {
		t.Errorf("mark/unmark round trip changed task: got %+v, want %+v", after, before)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want string
	}{
		{"todo pending", NewToDo("buy milk"), "[T][ ] buy milk"},
		{"deadline", NewDeadline("return book", "Sunday"), "[D][ ] return book (by: Sunday)"},
		{"event", NewEvent("meeting", "2pm", "4pm"), "[E][ ] meeting (from: 2pm to: 4pm)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.String(); got != tt.want {
				t.Errorf("String: got %q, want %q", got, tt.want)
			}
		})
	}

	done := NewToDo("buy milk")
	done.MarkDone()
	if got := done.String(); got != "[T][X] buy milk" {
		t.Errorf("String done: got %q", got)
	}
}
