// Package storage persists the task list as a JSON Lines file.
package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bibi-cli/bibi/internal/task"
)

// Store reads and writes the on-disk task file: one JSON object per task
// per line, in insertion order.
type Store struct {
	path string
}

// New creates a store for the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the task file into a task list. A missing file is not an
// error; it yields an empty list.
func (s *Store) Load() (*task.List, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return task.NewList(nil), nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	tasks, err := decodeLines(data)
	if err != nil {
		return nil, err
	}
	return task.NewList(tasks), nil
}

// Save rewrites the whole task file from the list. The parent directory
// is created if needed.
func (s *Store) Save(tasks *task.List) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, t := range tasks.Tasks() {
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("marshal task: %w", err)
		}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create task dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

func decodeLines(data []byte) ([]task.Task, error) {
	var tasks []task.Task
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var t task.Task
		if err := json.Unmarshal([]byte(line), &t); err != nil {
			return nil, fmt.Errorf("parse task file line %d: %w", lineNo, err)
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan task file: %w", err)
	}
	return tasks, nil
}
