package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func openTemp(t *testing.T, contents string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if contents != "" {
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s := openTemp(t, "")
	if s.Len() != 0 {
		t.Fatalf("Len: got %d, want 0", s.Len())
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open should not create the file, stat err = %v", err)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open("", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestAddPreservesOrder(t *testing.T) {
	s := openTemp(t, "")
	inputs := []Task{
		{Description: "one", Date: "2024-01-01", Time: "08:00"},
		{Description: "two", Date: "2024-01-02", Time: "09:00"},
		{Description: "three", Date: "2024-01-03", Time: "10:00"},
	}
	for _, in := range inputs {
		if err := s.Add(in.Description, in.Date, in.Time); err != nil {
			t.Fatalf("Add(%q) failed: %v", in.Description, err)
		}
	}
	got := s.Tasks()
	if len(got) != len(inputs) {
		t.Fatalf("Len: got %d, want %d", len(got), len(inputs))
	}
	for i := range inputs {
		if got[i] != inputs[i] {
			t.Errorf("task %d: got %+v, want %+v", i, got[i], inputs[i])
		}
	}
}

func TestAddRejectsEmptyFields(t *testing.T) {
	tests := []struct {
		name              string
		desc, date, clock string
	}{
		{"empty description", "", "2024-01-01", "09:00"},
		{"empty date", "Buy milk", "", "09:00"},
		{"empty time", "Buy milk", "2024-01-01", ""},
		{"all empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTemp(t, "")
			err := s.Add(tt.desc, tt.date, tt.clock)
			if !errors.Is(err, ErrMissingDetails) {
				t.Fatalf("Add: got %v, want ErrMissingDetails", err)
			}
			if s.Len() != 0 {
				t.Errorf("Len: got %d, want 0", s.Len())
			}
			if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("rejected Add should not write the file, stat err = %v", err)
			}
		})
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	s := openTemp(t, "")
	if err := s.Add("a", "d", "t"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	tasks := s.Tasks()
	tasks[0].Description = "changed"
	if s.Tasks()[0].Description != "a" {
		t.Error("mutating Tasks() result changed the store")
	}
}

func TestBuyMilkScenario(t *testing.T) {
	s := openTemp(t, "")
	if err := s.Add("Buy milk", "2024-01-01", "09:00"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	want := Task{Description: "Buy milk", Date: "2024-01-01", Time: "09:00"}
	if got := s.Tasks(); len(got) != 1 || got[0] != want {
		t.Fatalf("after Add: got %+v, want [%+v]", got, want)
	}

	if err := s.MarkCompleted(0); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}
	done := s.Tasks()[0]
	if !done.Completed {
		t.Fatal("task should be completed")
	}
	if got, want := done.String(), "Buy milk (Completed) - 2024-01-01 09:00"; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}

	removed, err := s.Delete(0)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if removed.Description != "Buy milk" {
		t.Errorf("removed: got %q, want Buy milk", removed.Description)
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("file should be empty after deleting the only task, got %q", data)
	}
}

func TestMarkCompletedTwice(t *testing.T) {
	s := openTemp(t, "")
	if err := s.Add("x", "d", "t"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.MarkCompleted(0); err != nil {
		t.Fatalf("first MarkCompleted failed: %v", err)
	}
	if err := s.MarkCompleted(0); !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second MarkCompleted: got %v, want ErrAlreadyCompleted", err)
	}
	if !s.Tasks()[0].Completed {
		t.Error("task should still be completed")
	}
}

func TestOutOfRangePositions(t *testing.T) {
	s := openTemp(t, "")
	if err := s.Add("x", "d", "t"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	for _, pos := range []int{-1, 1, 5} {
		if err := s.MarkCompleted(pos); !errors.Is(err, ErrNoSelection) {
			t.Errorf("MarkCompleted(%d): got %v, want ErrNoSelection", pos, err)
		}
		if _, err := s.Delete(pos); !errors.Is(err, ErrNoSelection) {
			t.Errorf("Delete(%d): got %v, want ErrNoSelection", pos, err)
		}
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
}

func TestDeleteShiftsLaterTasks(t *testing.T) {
	s := openTemp(t, "")
	for _, d := range []string{"a", "b", "c", "d"} {
		if err := s.Add(d, "date", "time"); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if _, err := s.Delete(1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got := s.Tasks()
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("Len: got %d, want %d", len(got), len(want))
	}
	for i, d := range want {
		if got[i].Description != d {
			t.Errorf("position %d: got %q, want %q", i, got[i].Description, d)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTemp(t, "")
	for _, in := range []Task{
		{Description: "Call mom", Date: "2024-02-02", Time: "10:30"},
		{Description: "Pay rent", Date: "2024-03-01", Time: "12:00"},
		{Description: "Walk: the dog", Date: "someday", Time: "later"},
	} {
		if err := s.Add(in.Description, in.Date, in.Time); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if err := s.MarkCompleted(1); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}

	reopened, err := Open(s.Path(), nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	want := s.Tasks()
	got := reopened.Tasks()
	if len(got) != len(want) {
		t.Fatalf("Len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("task %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveFormat(t *testing.T) {
	s := openTemp(t, "")
	if err := s.Add("Buy milk", "2024-01-01", "09:00"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Add("Call mom", "2024-02-02", "10:30"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.MarkCompleted(1); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	want := "Buy milk,False,2024-01-01,09:00\nCall mom,True,2024-02-02,10:30\n"
	if string(data) != want {
		t.Errorf("file contents:\n got %q\nwant %q", data, want)
	}
}

func TestLoadCompletedFlag(t *testing.T) {
	s := openTemp(t, "Call mom,True,2024-02-02,10:30\n")
	got := s.Tasks()
	want := Task{Description: "Call mom", Completed: true, Date: "2024-02-02", Time: "10:30"}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("Load: got %+v, want [%+v]", got, want)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	contents := "first,False,2024-01-01,09:00\n" +
		"only,three,fields\n" +
		"\n" +
		"too,many,fields,here,x\n" +
		"last,True,2024-01-02,10:00\r\n"
	s := openTemp(t, contents)
	got := s.Tasks()
	if len(got) != 2 {
		t.Fatalf("Len: got %d, want 2 (%+v)", len(got), got)
	}
	if got[0].Description != "first" || got[1].Description != "last" {
		t.Errorf("descriptions: got %q, %q", got[0].Description, got[1].Description)
	}
	if got[1].Time != "10:00" {
		t.Errorf("trailing CR should be trimmed, got time %q", got[1].Time)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Task
		ok   bool
	}{
		{"true flag", "a,True,d,t", Task{Description: "a", Completed: true, Date: "d", Time: "t"}, true},
		{"false flag", "a,False,d,t", Task{Description: "a", Date: "d", Time: "t"}, true},
		{"lowercase true is false", "a,true,d,t", Task{Description: "a", Date: "d", Time: "t"}, true},
		{"garbage flag is false", "a,yes,d,t", Task{Description: "a", Date: "d", Time: "t"}, true},
		{"surrounding whitespace", "  a,True,d,t \n", Task{Description: "a", Completed: true, Date: "d", Time: "t"}, true},
		{"three fields", "a,True,d", Task{}, false},
		{"five fields", "a,b,True,d,t", Task{}, false},
		{"empty", "", Task{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("ok: got %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("task: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCommaInFieldDoesNotLoadBack(t *testing.T) {
	s := openTemp(t, "")
	if err := s.Add("eggs, milk", "2024-01-01", "09:00"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len: got %d, want 1", s.Len())
	}
	reopened, err := Open(s.Path(), nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Len() != 0 {
		t.Errorf("line with an embedded comma should be dropped, got %d tasks", reopened.Len())
	}
}

func TestSaveFailureIsReturned(t *testing.T) {
	dir := t.TempDir()
	// A directory at the file path makes every write fail.
	path := filepath.Join(dir, "tasks")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	s := &Store{path: path, logger: log.New(io.Discard)}
	if err := s.Add("a", "b", "c"); err == nil {
		t.Fatal("expected save error")
	} else if errors.Is(err, ErrMissingDetails) {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestLoadReadError(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(dir, nil); err == nil {
		t.Fatal("expected error when the tasks path is a directory")
	}
}
