// Package cmd implements the CLI command structure for bibi.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bibi-cli/bibi/internal/config"
	"github.com/bibi-cli/bibi/internal/logging"
	"github.com/bibi-cli/bibi/internal/session"
	"github.com/bibi-cli/bibi/internal/storage"
	"github.com/bibi-cli/bibi/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the bibi CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("bibi", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand; no args means the interactive repl.
	subcommand := "repl"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "repl":
		return replCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "log":
		return logCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// replCommand runs the interactive session, the main mode of bibi.
func replCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("bibi repl", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	logger := logging.Console(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)

	store := storage.New(cfg.TaskFile)
	tasks, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}
	logger.Debug("task file loaded", "path", store.Path(), "tasks", tasks.Count())

	sessionLog, err := logging.NewSessionLog(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		// The session log is best-effort; the repl runs without it.
		logger.Warn("session log unavailable", "err", err)
	}
	defer sessionLog.Close()

	s := session.New(os.Stdin, ui.New(os.Stdout, cfg.LineWidth), tasks, store,
		session.WithSessionLog(sessionLog),
		session.WithDiagnostics(logger),
	)
	return s.Run(ctx)
}

// lsCommand lists the task file non-interactively.
func lsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("bibi ls", flag.ContinueOnError)
	doneOnly := fs.Bool("done", false, "Show done tasks only")
	pendingOnly := fs.Bool("pending", false, "Show pending tasks only")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}
	if *doneOnly && *pendingOnly {
		return fmt.Errorf("-done and -pending are mutually exclusive")
	}

	tasks, err := storage.New(cfg.TaskFile).Load()
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	shown := 0
	for i := 0; i < tasks.Count(); i++ {
		t := tasks.Get(i)
		if *doneOnly && !t.Done {
			continue
		}
		if *pendingOnly && t.Done {
			continue
		}
		fmt.Printf("%d. %s\n", i+1, t)
		shown++
	}
	if shown == 0 {
		fmt.Println("No tasks to show.")
	}
	return nil
}

// tuiCommand launches the read-only task browser.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("bibi tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}
	return ui.RunTUI(ctx, storage.New(cfg.TaskFile))
}

// doctorCommand checks config, the task file, and the log directory.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("bibi doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("bibi doctor")
	fmt.Println("===========")
	fmt.Println()

	allOK := true

	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	store := storage.New(cfg.TaskFile)
	fmt.Printf("Task file: %s\n", store.Path())
	info, err := os.Stat(store.Path())
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (will be created on first mutating command)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Println("  ✅ OK")
		errs, verr := store.Validate()
		if verr != nil {
			fmt.Printf("  ❌ Validation error: %v\n", verr)
			allOK = false
		} else if len(errs) > 0 {
			fmt.Println("  ❌ Invalid records:")
			for _, e := range errs {
				fmt.Printf("     - %v\n", e)
			}
			allOK = false
		} else {
			fmt.Println("  ✅ Valid")
			if *verbose {
				tasks, lerr := store.Load()
				if lerr == nil {
					fmt.Printf("  Tasks: %d\n", tasks.Count())
					for i := 0; i < tasks.Count(); i++ {
						fmt.Printf("    %d. %s\n", i+1, tasks.Get(i))
					}
				}
			}
		}
	}
	fmt.Println()

	fmt.Printf("Log directory: %s\n", cfg.LogDir)
	if _, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on run)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. bibi may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// logCommand dumps the latest session log.
func logCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("bibi log", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := logging.LatestSessionLog(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding latest session log: %w", err)
	}
	if path == "" {
		fmt.Println("No session logs found.")
		return nil
	}

	fmt.Printf("Session log: %s\n\n", path)
	return logging.Dump(os.Stdout, path)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("bibi version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "bibi - a text-command-driven task manager")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  bibi [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  repl          Interactive session (default command)")
	fmt.Fprintln(w, "  ls            List tasks from the task file")
	fmt.Fprintln(w, "  tui           Launch the read-only task browser")
	fmt.Fprintln(w, "  doctor        Check config, task file, and log directory")
	fmt.Fprintln(w, "  log           Dump the latest session log")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -done")
	fmt.Fprintln(w, "        Show done tasks only")
	fmt.Fprintln(w, "  -pending")
	fmt.Fprintln(w, "        Show pending tasks only")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Repl commands:")
	fmt.Fprintln(w, "  list                                       Show all tasks")
	fmt.Fprintln(w, "  todo <description>                         Add a todo")
	fmt.Fprintln(w, "  deadline <description> /by <deadline>      Add a deadline")
	fmt.Fprintln(w, "  event <description> /from <time> /to <time>  Add an event")
	fmt.Fprintln(w, "  mark <int> / unmark <int>                  Toggle completion")
	fmt.Fprintln(w, "  remove <index>                             Remove a task")
	fmt.Fprintln(w, "  find <pattern>                             Search descriptions")
	fmt.Fprintln(w, "  bye                                        Exit")
}
