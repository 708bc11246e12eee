// Package storage keeps the task list in memory and mirrors it to a
// line-oriented text file.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	DefaultFileName = "tasks.txt"

	fieldSep  = ","
	numFields = 4
)

var (
	ErrMissingDetails   = errors.New("task details are incomplete")
	ErrAlreadyCompleted = errors.New("task is already completed")
	ErrNoSelection      = errors.New("no task at position")
)

type Task struct {
	Description string
	Completed   bool
	Date        string
	Time        string
}

// String renders the task the way the list view shows it.
func (t Task) String() string {
	return fmt.Sprintf("%s (%s) - %s %s", t.Description, humanDone(t.Completed), t.Date, t.Time)
}

// Store is not safe for concurrent use; the UI drives it from a single goroutine.
type Store struct {
	path   string
	tasks  []Task
	logger *log.Logger
}

func Open(path string, logger *log.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("tasks file path is empty")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{path: path, logger: logger}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a copy of the tasks in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Load replaces the in-memory list with the file contents. A missing file
// leaves the store empty.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.tasks = nil
		s.logger.Debug("tasks file not found, starting empty", "path", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read tasks: %w", err)
	}

	var tasks []Task
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, ok := ParseLine(line)
		if !ok {
			s.logger.Warn("skipping malformed line", "path", s.path, "line", i+1)
			continue
		}
		tasks = append(tasks, t)
	}
	s.tasks = tasks
	s.logger.Info("tasks loaded", "path", s.path, "count", len(tasks))
	return nil
}

func (s *Store) Add(description, date, time string) error {
	if description == "" || date == "" || time == "" {
		return ErrMissingDetails
	}
	if strings.Contains(description+date+time, fieldSep) {
		s.logger.Warn("task field contains the delimiter and will not load back cleanly", "description", description)
	}
	s.tasks = append(s.tasks, Task{Description: description, Date: date, Time: time})
	s.logger.Info("task added", "position", len(s.tasks)-1)
	return s.Save()
}

func (s *Store) MarkCompleted(pos int) error {
	if !s.valid(pos) {
		return ErrNoSelection
	}
	if s.tasks[pos].Completed {
		return ErrAlreadyCompleted
	}
	s.tasks[pos].Completed = true
	s.logger.Info("task completed", "position", pos)
	return s.Save()
}

// Delete removes the task at pos and returns it. Later tasks shift down one
// position.
func (s *Store) Delete(pos int) (Task, error) {
	if !s.valid(pos) {
		return Task{}, ErrNoSelection
	}
	t := s.tasks[pos]
	s.tasks = append(s.tasks[:pos], s.tasks[pos+1:]...)
	s.logger.Info("task deleted", "position", pos)
	return t, s.Save()
}

// Save overwrites the file with one line per task.
func (s *Store) Save() error {
	var b strings.Builder
	for _, t := range s.tasks {
		b.WriteString(FormatLine(t))
		b.WriteString("\n")
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (s *Store) valid(pos int) bool {
	return pos >= 0 && pos < len(s.tasks)
}

// FormatLine encodes t without a trailing newline.
func FormatLine(t Task) string {
	return strings.Join([]string{t.Description, boolToFlag(t.Completed), t.Date, t.Time}, fieldSep)
}

// ParseLine decodes one line. ok is false unless the trimmed line splits into
// exactly four fields.
func ParseLine(line string) (Task, bool) {
	parts := strings.Split(strings.TrimSpace(line), fieldSep)
	if len(parts) != numFields {
		return Task{}, false
	}
	return Task{
		Description: parts[0],
		Completed:   parts[1] == "True",
		Date:        parts[2],
		Time:        parts[3],
	}, true
}

func boolToFlag(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func humanDone(done bool) string {
	if done {
		return "Completed"
	}
	return "Incomplete"
}
