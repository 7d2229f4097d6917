package core

import (
	"errors"
	"fmt"
	"math"
)

// Idle is the process id recorded for timeline blocks where no process runs.
const Idle = "Idle"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInconsistentTimeline = errors.New("inconsistent timeline")
)

// Process is a caller supplied process definition. Lower Priority values
// mean higher priority.
type Process struct {
	ID       string `json:"id"`
	Arrival  int    `json:"arrival"`
	Burst    int    `json:"burst"`
	Priority int    `json:"priority"`
}

// Validate checks the shape of a single process.
func (p Process) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: process id must not be empty", ErrInvalidInput)
	}
	if p.ID == Idle {
		return fmt.Errorf("%w: process id %q is reserved", ErrInvalidInput, Idle)
	}
	if p.Arrival < 0 {
		return fmt.Errorf("%w: process %s has negative arrival %d", ErrInvalidInput, p.ID, p.Arrival)
	}
	if p.Burst <= 0 {
		return fmt.Errorf("%w: process %s has non-positive burst %d", ErrInvalidInput, p.ID, p.Burst)
	}
	return nil
}

// ValidateProcesses checks every process and the uniqueness of ids.
func ValidateProcesses(processes []Process) error {
	if len(processes) == 0 {
		return fmt.Errorf("%w: empty process list", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(processes))
	for _, p := range processes {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: duplicate process id %s", ErrInvalidInput, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return Limits{}.Check(processes)
}

// Limits bounds the size of a simulation. Zero fields are unbounded; the
// clock overflowing is always rejected.
type Limits struct {
	MaxTotalBurst int
	MaxHorizon    int
}

// Check rejects process sets whose total burst or latest possible end
// exceeds the limits. No run ends later than the last arrival plus the
// total burst.
func (l Limits) Check(processes []Process) error {
	total, lastArrival := 0, 0
	for _, p := range processes {
		if p.Burst < 0 || p.Burst > math.MaxInt-total {
			return fmt.Errorf("%w: total burst overflows", ErrInvalidInput)
		}
		total += p.Burst
		if p.Arrival > lastArrival {
			lastArrival = p.Arrival
		}
	}
	if total > math.MaxInt-lastArrival {
		return fmt.Errorf("%w: simulated time overflows", ErrInvalidInput)
	}
	if l.MaxTotalBurst > 0 && total > l.MaxTotalBurst {
		return fmt.Errorf("%w: total burst %d exceeds the limit of %d", ErrInvalidInput, total, l.MaxTotalBurst)
	}
	if horizon := lastArrival + total; l.MaxHorizon > 0 && horizon > l.MaxHorizon {
		return fmt.Errorf("%w: simulation could run until %d, beyond the limit of %d", ErrInvalidInput, horizon, l.MaxHorizon)
	}
	return nil
}

// RuntimeProcess is the private per-run copy of a Process. Index is the
// position of the process in the caller's input and breaks every tie.
type RuntimeProcess struct {
	Process
	Index     int
	Remaining int
}

func (p *RuntimeProcess) Done() bool {
	return p.Remaining == 0
}

// NewRuntimeProcesses copies the caller's processes; the input slice is
// never touched again by a simulation.
func NewRuntimeProcesses(processes []Process) []*RuntimeProcess {
	runtime := make([]*RuntimeProcess, 0, len(processes))
	for i, p := range processes {
		runtime = append(runtime, &RuntimeProcess{
			Process:   p,
			Index:     i,
			Remaining: p.Burst,
		})
	}
	return runtime
}

type TimelineBlock struct {
	ProcessID string `json:"process_id"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
}

func (b TimelineBlock) Duration() int {
	return b.End - b.Start
}

func (b TimelineBlock) IsIdle() bool {
	return b.ProcessID == Idle
}

func (b TimelineBlock) String() string {
	return fmt.Sprintf("%s:%d-%d", b.ProcessID, b.Start, b.End)
}

// Timeline is an ordered, gapless sequence of blocks.
type Timeline []TimelineBlock

// End returns the end of the last block, 0 for an empty timeline.
func (t Timeline) End() int {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].End
}

// IdleTime sums the durations of idle blocks.
func (t Timeline) IdleTime() int {
	idle := 0
	for _, b := range t {
		if b.IsIdle() {
			idle += b.Duration()
		}
	}
	return idle
}

// Check verifies that blocks are non-empty and contiguous.
func (t Timeline) Check() error {
	for i, b := range t {
		if b.End <= b.Start {
			return fmt.Errorf("%w: block %d (%s) is empty", ErrInconsistentTimeline, i, b)
		}
		if i > 0 && t[i-1].End != b.Start {
			return fmt.Errorf("%w: gap or overlap between %s and %s", ErrInconsistentTimeline, t[i-1], b)
		}
	}
	return nil
}
