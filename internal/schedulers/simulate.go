package schedulers

import (
	"fmt"
	"strings"

	"cpu-scheduler-sim/internal/core"
)

type Algorithm int

const (
	FirstComeFirstServe Algorithm = iota
	ShortestJobFirst
	ShortestRemainingTimeFirst
	Priority
	RoundRobin
)

var algorithmNames = map[Algorithm]string{
	FirstComeFirstServe:        "fcfs",
	ShortestJobFirst:           "sjf",
	ShortestRemainingTimeFirst: "srtf",
	Priority:                   "priority",
	RoundRobin:                 "rr",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Title is the human readable algorithm name.
func (a Algorithm) Title() string {
	switch a {
	case FirstComeFirstServe:
		return "First-come, first-serve"
	case ShortestJobFirst:
		return "Shortest-job-first"
	case ShortestRemainingTimeFirst:
		return "Shortest-remaining-time-first"
	case Priority:
		return "Priority"
	case RoundRobin:
		return "Round-robin"
	}
	return a.String()
}

// Algorithms lists every supported algorithm in a fixed order.
func Algorithms() []Algorithm {
	return []Algorithm{FirstComeFirstServe, ShortestJobFirst, ShortestRemainingTimeFirst, Priority, RoundRobin}
}

func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fcfs":
		return FirstComeFirstServe, nil
	case "sjf":
		return ShortestJobFirst, nil
	case "srtf":
		return ShortestRemainingTimeFirst, nil
	case "priority":
		return Priority, nil
	case "rr", "round_robin", "roundrobin":
		return RoundRobin, nil
	}
	return 0, fmt.Errorf("%w: unknown algorithm %q", core.ErrInvalidInput, name)
}

// Simulate runs one algorithm over its own copy of processes. The quantum
// is only used by RoundRobin. Either a complete timeline or an error is
// returned.
func Simulate(algorithm Algorithm, processes []core.Process, quantum int) (core.Timeline, error) {
	if err := core.ValidateProcesses(processes); err != nil {
		return nil, err
	}

	var timeline core.Timeline
	switch algorithm {
	case FirstComeFirstServe:
		timeline = ScheduleFirstComeFirstServe(processes)
	case ShortestJobFirst:
		timeline = ScheduleShortestJobFirst(processes)
	case ShortestRemainingTimeFirst:
		timeline = ScheduleShortestRemainingTimeFirst(processes)
	case Priority:
		timeline = SchedulePriority(processes)
	case RoundRobin:
		if quantum <= 0 {
			return nil, fmt.Errorf("%w: round robin time quantum must be positive, got %d", core.ErrInvalidInput, quantum)
		}
		timeline = ScheduleRoundRobin(processes, quantum)
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %d", core.ErrInvalidInput, int(algorithm))
	}

	if err := timeline.Check(); err != nil {
		return nil, err
	}
	return timeline, nil
}

// Result pairs an algorithm with its timeline and metrics.
type Result struct {
	Algorithm Algorithm
	Timeline  core.Timeline
	Metrics   Metrics
}

// SimulateAll runs every algorithm in Algorithms order.
func SimulateAll(processes []core.Process, quantum int) ([]Result, error) {
	results := make([]Result, 0, len(algorithmNames))
	for _, algorithm := range Algorithms() {
		result, err := Run(algorithm, processes, quantum)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", algorithm, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Run simulates one algorithm and computes the metrics of its timeline.
func Run(algorithm Algorithm, processes []core.Process, quantum int) (Result, error) {
	timeline, err := Simulate(algorithm, processes, quantum)
	if err != nil {
		return Result{}, err
	}
	metrics, err := ComputeMetrics(timeline, processes)
	if err != nil {
		return Result{}, err
	}
	return Result{Algorithm: algorithm, Timeline: timeline, Metrics: metrics}, nil
}

// nextArrival returns the earliest arrival after now among unfinished
// processes, and false when there is none.
func nextArrival(processes []*core.RuntimeProcess, now int) (int, bool) {
	next, found := 0, false
	for _, p := range processes {
		if p.Done() || p.Arrival <= now {
			continue
		}
		if !found || p.Arrival < next {
			next, found = p.Arrival, true
		}
	}
	return next, found
}

// selectNext scans the ready processes and returns the one with the
// smallest key. Equal keys fall back to arrival and then to input order.
func selectNext(processes []*core.RuntimeProcess, now int, key func(*core.RuntimeProcess) int) *core.RuntimeProcess {
	var best *core.RuntimeProcess
	for _, p := range processes {
		if p.Done() || p.Arrival > now {
			continue
		}
		if best == nil || less(p, best, key) {
			best = p
		}
	}
	return best
}

func less(a, b *core.RuntimeProcess, key func(*core.RuntimeProcess) int) bool {
	if ka, kb := key(a), key(b); ka != kb {
		return ka < kb
	}
	if a.Arrival != b.Arrival {
		return a.Arrival < b.Arrival
	}
	return a.Index < b.Index
}

// scheduleNonPreemptive repeatedly picks the best ready process by key and
// runs it to completion, idling until the next arrival when none is ready.
func scheduleNonPreemptive(processes []core.Process, key func(*core.RuntimeProcess) int) core.Timeline {
	runtime := core.NewRuntimeProcesses(processes)
	cpu := core.NewCpu()
	for completed := 0; completed < len(runtime); {
		next := selectNext(runtime, cpu.Clock(), key)
		if next == nil {
			arrival, ok := nextArrival(runtime, cpu.Clock())
			if !ok {
				break
			}
			cpu.IdleUntil(arrival)
			continue
		}
		cpu.Dispatch(next, next.Remaining)
		completed++
	}
	return cpu.Timeline()
}
