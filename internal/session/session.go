// Package session runs the interactive read-eval loop over a task list.
package session

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bibi-cli/bibi/internal/command"
	"github.com/bibi-cli/bibi/internal/logging"
	"github.com/bibi-cli/bibi/internal/storage"
	"github.com/bibi-cli/bibi/internal/task"
	"github.com/bibi-cli/bibi/internal/ui"
)

// Session owns one interactive run: it reads command lines, executes
// them against the task list, and records each command. Every command
// runs to completion, including its persistence write, before the next
// line is read.
type Session struct {
	in    io.Reader
	ui    *ui.Ui
	tasks *task.List
	store *storage.Store
	log   *logging.SessionLog
	diag  *log.Logger
}

// Option configures a session.
type Option func(*Session)

// WithSessionLog attaches a per-session command log. Logging is
// best-effort and never affects command execution.
func WithSessionLog(sl *logging.SessionLog) Option {
	return func(s *Session) {
		s.log = sl
	}
}

// WithDiagnostics attaches a diagnostics logger.
func WithDiagnostics(logger *log.Logger) Option {
	return func(s *Session) {
		s.diag = logger
	}
}

// New creates a session reading command lines from in.
func New(in io.Reader, u *ui.Ui, tasks *task.List, store *storage.Store, opts ...Option) *Session {
	s := &Session{
		in:    in,
		ui:    u,
		tasks: tasks,
		store: store,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run greets the user and processes command lines until "bye", end of
// input, or context cancellation. Exit is decided by the command's
// IsExit predicate alone; a failed persistence write does not keep the
// session alive.
func (s *Session) Run(ctx context.Context) error {
	s.ui.Greeting()

	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		keyword, args := splitLine(scanner.Text())
		cmd := command.New(keyword, args)
		outcome := cmd.Execute(s.tasks, s.ui, s.store)

		if err := s.log.Record(logging.CommandRecord{
			Time:    time.Now().UTC(),
			Keyword: keyword,
			Outcome: string(outcome),
			Tasks:   s.tasks.Count(),
		}); err != nil && s.diag != nil {
			s.diag.Warn("session log write failed", "err", err)
		}

		if cmd.IsExit() {
			return nil
		}
	}
	return scanner.Err()
}

// splitLine splits an input line into the keyword and the argument
// string, trimming the separating whitespace.
func splitLine(line string) (string, string) {
	trimmed := strings.TrimSpace(line)
	keyword, args, found := strings.Cut(trimmed, " ")
	if !found {
		return trimmed, ""
	}
	return keyword, strings.TrimSpace(args)
}
