package task

import "strings"

// List is the ordered, mutable collection of tasks for a session. It is
// the sole owner of its tasks; callers address tasks by position, and
// positions shift when an earlier task is removed.
type List struct {
	tasks []Task
}

// NewList creates a list seeded with the given tasks.
func NewList(tasks []Task) *List {
	return &List{tasks: tasks}
}

// Count returns the number of tasks.
func (l *List) Count() int {
	return len(l.tasks)
}

// Get returns a pointer to the task at the 0-based index. The pointer is
// valid until the next Add or Remove.
func (l *List) Get(i int) *Task {
	return &l.tasks[i]
}

// Add appends a task to the end of the list.
func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

// Remove deletes the task at the 1-based index and returns it. The valid
// range is [1, Count]; anything else returns false and leaves the list
// unchanged. Tasks after the removed one shift down by one position.
func (l *List) Remove(index int) (Task, bool) {
	if index < 1 || index > len(l.tasks) {
		return Task{}, false
	}
	removed := l.tasks[index-1]
	l.tasks = append(l.tasks[:index-1], l.tasks[index:]...)
	return removed, true
}

// Match pairs a task with its current 1-based position.
type Match struct {
	Index int
	Task  Task
}

// Find returns every task whose description contains pattern as a
// case-sensitive substring, in list order.
func (l *List) Find(pattern string) []Match {
	var matches []Match
	for i, t := range l.tasks {
		if strings.Contains(t.Description, pattern) {
			matches = append(matches, Match{Index: i + 1, Task: t})
		}
	}
	return matches
}

// Tasks returns the backing slice in list order. Callers must not hold
// the slice across mutations.
func (l *List) Tasks() []Task {
	return l.tasks
}
