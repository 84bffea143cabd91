// Package command interprets a single already-split command line and
// applies it to the task list.
package command

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bibi-cli/bibi/internal/storage"
	"github.com/bibi-cli/bibi/internal/task"
	"github.com/bibi-cli/bibi/internal/ui"
)

// Outcome classifies what a command execution did. It feeds the session
// log; the console output itself goes through Ui.
type Outcome string

const (
	OutcomeAdded       Outcome = "added"
	OutcomeRemoved     Outcome = "removed"
	OutcomeMarked      Outcome = "marked"
	OutcomeUnmarked    Outcome = "unmarked"
	OutcomeListed      Outcome = "listed"
	OutcomeFound       Outcome = "found"
	OutcomeExit        Outcome = "exit"
	OutcomeSyntaxError Outcome = "syntax-error"
	OutcomeIndexError  Outcome = "index-error"
	OutcomeUnknown     Outcome = "unknown"
)

// Command is one parsed input line: the first token and the remainder.
// The caller owns the split and trims the separating whitespace.
type Command struct {
	Keyword string
	Args    string
}

// New creates a command from an already-split keyword and argument string.
func New(keyword, args string) Command {
	return Command{Keyword: keyword, Args: args}
}

// IsExit reports whether this command ends the session. It is queried by
// the surrounding read loop, independent of whether persistence worked.
func (c Command) IsExit() bool {
	return c.Keyword == "bye"
}

// handler is the per-keyword behavior: validate the argument shape,
// apply at most one mutation, report through Ui.
type handler struct {
	// framed handlers get a horizontal rule before and after their output.
	framed bool
	// persist re-saves the list after the handler runs, even when the
	// handler rejected its arguments. Rejected mutations still trigger a
	// write of the unchanged list; that is observed behavior this
	// implementation keeps.
	persist bool
	run     func(args string, tasks *task.List, u *ui.Ui) Outcome
}

var digits = regexp.MustCompile(`^\d+$`)

var handlers = map[string]handler{
	"bye": {persist: true, run: func(_ string, _ *task.List, u *ui.Ui) Outcome {
		u.Exit()
		return OutcomeExit
	}},
	"list": {run: func(_ string, tasks *task.List, u *ui.Ui) Outcome {
		u.List(tasks)
		return OutcomeListed
	}},
	"mark":     {framed: true, persist: true, run: markHandler(true)},
	"unmark":   {framed: true, persist: true, run: markHandler(false)},
	"todo":     {framed: true, persist: true, run: todoHandler},
	"deadline": {framed: true, persist: true, run: deadlineHandler},
	"event":    {framed: true, persist: true, run: eventHandler},
	"remove":   {framed: true, persist: true, run: removeHandler},
	"find":     {framed: true, run: findHandler},
}

// Execute dispatches on the keyword, applies the handler, and persists
// the list when the handler requires it. Persistence failures are
// reported through Ui and never abort an already-applied mutation.
func (c Command) Execute(tasks *task.List, u *ui.Ui, store *storage.Store) Outcome {
	h, ok := handlers[c.Keyword]
	if !ok {
		u.UnknownCommand(c.Keyword)
		return OutcomeUnknown
	}

	if h.framed {
		u.Rule()
	}
	outcome := h.run(c.Args, tasks, u)
	if h.framed {
		u.Rule()
	}

	if h.persist {
		if err := store.Save(tasks); err != nil {
			u.Error(err.Error())
		}
	}
	return outcome
}

// markHandler builds the handler for mark (done=true) and unmark. The
// valid index range is the 1-based inclusive [1, Count] for mark,
// unmark, and remove alike.
func markHandler(done bool) func(string, *task.List, *ui.Ui) Outcome {
	verb := "mark"
	if !done {
		verb = "unmark"
	}
	return func(args string, tasks *task.List, u *ui.Ui) Outcome {
		if !digits.MatchString(args) {
			u.InvalidSyntax("Please use \"" + verb + " <int>\"")
			return OutcomeSyntaxError
		}
		index, _ := strconv.Atoi(args)
		if index < 1 || index > tasks.Count() {
			u.InvalidIndex()
			return OutcomeIndexError
		}
		t := tasks.Get(index - 1)
		if done {
			t.MarkDone()
			u.TaskMarked(*t)
			return OutcomeMarked
		}
		t.MarkNotDone()
		u.TaskUnmarked(*t)
		return OutcomeUnmarked
	}
}

func todoHandler(args string, tasks *task.List, u *ui.Ui) Outcome {
	desc := strings.TrimSpace(args)
	if desc == "" {
		u.InvalidSyntax(`Please use "todo <description>"`)
		return OutcomeSyntaxError
	}
	t := task.NewToDo(desc)
	tasks.Add(t)
	u.TaskAdded(t, tasks.Count())
	return OutcomeAdded
}

func deadlineHandler(args string, tasks *task.List, u *ui.Ui) Outcome {
	parts := strings.SplitN(args, " /by ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || parts[1] == "" {
		u.InvalidSyntax(`Please use "deadline <description> /by <deadline>"`)
		return OutcomeSyntaxError
	}
	t := task.NewDeadline(strings.TrimSpace(parts[0]), parts[1])
	tasks.Add(t)
	u.TaskAdded(t, tasks.Count())
	return OutcomeAdded
}

func eventHandler(args string, tasks *task.List, u *ui.Ui) Outcome {
	parts := strings.SplitN(args, " /from ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
		u.InvalidSyntax(`Please use "event <description> /from <time> /to <time>"`)
		return OutcomeSyntaxError
	}
	interval := strings.SplitN(parts[1], " /to ", 2)
	if len(interval) != 2 || interval[0] == "" || interval[1] == "" {
		u.InvalidSyntax(`Please use "event <description> /from <time> /to <time>"`)
		return OutcomeSyntaxError
	}
	t := task.NewEvent(strings.TrimSpace(parts[0]), interval[0], interval[1])
	tasks.Add(t)
	u.TaskAdded(t, tasks.Count())
	return OutcomeAdded
}

func removeHandler(args string, tasks *task.List, u *ui.Ui) Outcome {
	if !digits.MatchString(args) {
		u.InvalidSyntax(`Please use "remove <index>"`)
		return OutcomeSyntaxError
	}
	index, _ := strconv.Atoi(args)
	removed, ok := tasks.Remove(index)
	if !ok {
		u.InvalidIndex()
		return OutcomeIndexError
	}
	u.TaskRemoved(removed, tasks.Count())
	return OutcomeRemoved
}

func findHandler(args string, tasks *task.List, u *ui.Ui) Outcome {
	if args == "" {
		u.InvalidSyntax(`Please use "find <pattern>"`)
		return OutcomeSyntaxError
	}
	u.Matches(tasks.Find(args))
	return OutcomeFound
}
