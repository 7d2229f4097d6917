package registry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"cpu-scheduler-sim/internal/core"
)

var header = []string{"id", "arrival", "burst", "priority"}

// Store persists a process list across sessions.
type Store interface {
	Load() ([]core.Process, error)
	Save(processes []core.Process) error
}

// FileStore keeps the process list in a CSV file, one row per process.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the file; a missing file is an empty list.
func (s *FileStore) Load() ([]core.Process, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		glog.V(1).Infof("process store %s does not exist yet", s.path)
		return []core.Process{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening process store: %w", err)
	}
	defer f.Close()

	processes, err := ReadProcesses(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	glog.Infof("loaded %d processes from %s", len(processes), s.path)
	return processes, nil
}

// Save writes to a temporary file next to the target and renames it over.
func (s *FileStore) Save(processes []core.Process) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating process store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteProcesses(tmp, processes); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing process store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing process store: %w", err)
	}
	glog.Infof("saved %d processes to %s", len(processes), s.path)
	return nil
}

// ReadProcesses parses rows of id,arrival,burst[,priority]. A leading
// header row is skipped.
func ReadProcesses(r io.Reader) ([]core.Process, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV: %v", core.ErrInvalidInput, err)
	}

	processes := make([]core.Process, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeader(row) {
			continue
		}
		p, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		processes = append(processes, p)
	}
	return processes, nil
}

func WriteProcesses(w io.Writer, processes []core.Process) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	for _, p := range processes {
		row := []string{
			p.ID,
			strconv.Itoa(p.Arrival),
			strconv.Itoa(p.Burst),
			strconv.Itoa(p.Priority),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), header[0])
}

func parseRow(row []string) (core.Process, error) {
	if len(row) != 3 && len(row) != 4 {
		return core.Process{}, fmt.Errorf("%w: expected 3 or 4 columns, got %d", core.ErrInvalidInput, len(row))
	}
	var p core.Process
	var err error
	p.ID = strings.TrimSpace(row[0])
	if p.Arrival, err = parseInt("arrival", row[1]); err != nil {
		return core.Process{}, err
	}
	if p.Burst, err = parseInt("burst", row[2]); err != nil {
		return core.Process{}, err
	}
	if len(row) == 4 && strings.TrimSpace(row[3]) != "" {
		if p.Priority, err = parseInt("priority", row[3]); err != nil {
			return core.Process{}, err
		}
	}
	return p, nil
}

func parseInt(field, s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", core.ErrInvalidInput, field, s)
	}
	return i, nil
}
