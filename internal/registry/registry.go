package registry

import (
	"errors"
	"fmt"
	"sync"

	"cpu-scheduler-sim/internal/core"
)

var (
	ErrDuplicateProcess = errors.New("duplicate process id")
	ErrProcessNotFound  = errors.New("process not found")
)

// Registry holds the ordered, id-unique process list that simulations are
// run against. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	processes []core.Process
}

func NewRegistry() *Registry {
	return &Registry{processes: make([]core.Process, 0)}
}

func (r *Registry) Add(p core.Process) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(p.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateProcess, p.ID)
	}
	r.processes = append(r.processes, p)
	return nil
}

func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrProcessNotFound, id)
	}
	r.processes = append(r.processes[:i], r.processes[i+1:]...)
	return nil
}

func (r *Registry) Get(id string) (core.Process, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.processes[i], true
	}
	return core.Process{}, false
}

// List returns a copy of the processes in insertion order.
func (r *Registry) List() []core.Process {
	r.mu.RLock()
	defer r.mu.RUnlock()
	processes := make([]core.Process, len(r.processes))
	copy(processes, r.processes)
	return processes
}

// Replace swaps the whole list, typically after a load. The new list is
// validated first and the registry is left untouched on error.
func (r *Registry) Replace(processes []core.Process) error {
	if len(processes) > 0 {
		if err := core.ValidateProcesses(processes); err != nil {
			return err
		}
	}
	replaced := make([]core.Process, len(processes))
	copy(replaced, processes)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.processes = replaced
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.processes)
}

func (r *Registry) indexOf(id string) int {
	for i, p := range r.processes {
		if p.ID == id {
			return i
		}
	}
	return -1
}
