// Package logging provides console diagnostics and the per-session
// JSONL command log.
package logging

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Console creates a leveled logger for diagnostics. Diagnostics go to
// stderr so they never interleave with the command protocol on stdout.
func Console(level, format string, timestamps bool) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(format),
		ReportTimestamp: timestamps,
		Prefix:          "bibi",
	})
}

// ParseLevel parses a string log level.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a string formatter name.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// CommandRecord is one executed command in the session log.
type CommandRecord struct {
	Time    time.Time `json:"time"`
	Keyword string    `json:"keyword"`
	Outcome string    `json:"outcome"`
	Tasks   int       `json:"tasks"`
}

// SessionLog writes one JSONL record per executed command to a
// per-session file under <baseDir>/<project-slug>/.
type SessionLog struct {
	Dir     string
	ID      string
	LogPath string
	file    *os.File
}

// NewSessionLog creates the per-session log file.
func NewSessionLog(baseDir, workDir string) (*SessionLog, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("log base dir is empty")
	}

	resolvedWorkDir := workDir
	if resolvedWorkDir == "" {
		resolvedWorkDir = "."
	}
	if abs, err := filepath.Abs(resolvedWorkDir); err == nil {
		resolvedWorkDir = abs
	}

	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(resolvedWorkDir, baseDir)
	}
	logDir := filepath.Join(filepath.Clean(baseDir), projectSlug(resolvedWorkDir))

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := sessionID()
	logPath := filepath.Join(logDir, fmt.Sprintf("%s.jsonl", id))
	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	return &SessionLog{
		Dir:     logDir,
		ID:      id,
		LogPath: logPath,
		file:    file,
	}, nil
}

// Record appends one command record. Nil receivers are no-ops so callers
// can log unconditionally.
func (s *SessionLog) Record(rec CommandRecord) error {
	if s == nil || s.file == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal command record: %w", err)
	}
	data = append(data, '\n')
	if _, err := s.file.Write(data); err != nil {
		return fmt.Errorf("write command record: %w", err)
	}
	return nil
}

// Close closes the session log file.
func (s *SessionLog) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

func projectSlug(projectRoot string) string {
	name := filepath.Base(projectRoot)
	return fmt.Sprintf("%s-%s", slugify(name), hashPath(projectRoot))
}

func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "project"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "project"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}

func sessionID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// LatestSessionLog finds the newest session log file under the project's
// log directory, or "" when there is none.
func LatestSessionLog(baseDir, workDir string) (string, error) {
	resolvedWorkDir := workDir
	if resolvedWorkDir == "" {
		resolvedWorkDir = "."
	}
	if abs, err := filepath.Abs(resolvedWorkDir); err == nil {
		resolvedWorkDir = abs
	}
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(resolvedWorkDir, baseDir)
	}
	logDir := filepath.Join(filepath.Clean(baseDir), projectSlug(resolvedWorkDir))

	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(logDir, entry.Name())
		}
	}
	return latest, nil
}

// Dump copies a session log file to w.
func Dump(w io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()
	_, err = io.Copy(w, file)
	return err
}
