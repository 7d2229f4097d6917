package schedulers

import (
	"fmt"

	"cpu-scheduler-sim/internal/core"
	"cpu-scheduler-sim/internal/responses"
	"cpu-scheduler-sim/internal/util"
)

// Metrics is what ComputeMetrics derives from a timeline. Details follow
// the order of the input processes.
type Metrics struct {
	Details               []responses.ProcessResponse
	ByID                  map[string]responses.ProcessResponse
	TotalTime             int
	IdleTime              int
	CpuUtilization        float64
	CpuThroughput         float64
	AverageWaitingTime    float64
	AverageResponseTime   float64
	AverageTurnAroundTime float64
	ContextSwitches       int
}

// ComputeMetrics derives per-process waiting, turnaround and response
// times plus cpu utilization from a timeline produced for processes.
func ComputeMetrics(timeline core.Timeline, processes []core.Process) (Metrics, error) {
	if len(processes) == 0 {
		return Metrics{}, fmt.Errorf("%w: empty process list", core.ErrInvalidInput)
	}

	first := make(map[string]int, len(processes))
	last := make(map[string]int, len(processes))
	busy := 0
	switches := 0
	previous := ""
	for _, block := range timeline {
		if block.IsIdle() {
			continue
		}
		if _, ok := first[block.ProcessID]; !ok {
			first[block.ProcessID] = block.Start
		}
		last[block.ProcessID] = block.End
		busy += block.Duration()
		if previous != "" && previous != block.ProcessID {
			switches++
		}
		previous = block.ProcessID
	}

	metrics := Metrics{
		Details:         make([]responses.ProcessResponse, 0, len(processes)),
		ByID:            make(map[string]responses.ProcessResponse, len(processes)),
		TotalTime:       timeline.End(),
		IdleTime:        timeline.IdleTime(),
		ContextSwitches: switches,
	}
	totalBurst := 0
	for _, p := range processes {
		completion, ok := last[p.ID]
		if !ok {
			return Metrics{}, fmt.Errorf("%w: process %s has no block", core.ErrInconsistentTimeline, p.ID)
		}
		details := generateProcessDetails(p, first[p.ID], completion)
		metrics.Details = append(metrics.Details, details)
		metrics.ByID[p.ID] = details
		totalBurst += p.Burst
	}
	if busy != totalBurst {
		return Metrics{}, fmt.Errorf("%w: timeline runs %d units for a total burst of %d", core.ErrInconsistentTimeline, busy, totalBurst)
	}

	metrics.CpuUtilization = util.Percent(totalBurst, metrics.TotalTime)
	if metrics.TotalTime > 0 {
		metrics.CpuThroughput = float64(len(processes)) / float64(metrics.TotalTime)
	}
	metrics.AverageWaitingTime, metrics.AverageResponseTime, metrics.AverageTurnAroundTime = util.CalculateAverage(metrics.Details)
	return metrics, nil
}

func generateProcessDetails(p core.Process, firstStart, completion int) responses.ProcessResponse {
	turnAroundTime := completion - p.Arrival
	return responses.ProcessResponse{
		ProcessId:      p.ID,
		ArrivalTime:    p.Arrival,
		BurstTime:      p.Burst,
		Priority:       p.Priority,
		CompletionTime: completion,
		ResponseTime:   firstStart - p.Arrival,
		TurnAroundTime: turnAroundTime,
		WaitingTime:    turnAroundTime - p.Burst,
	}
}

// GenerateResponse converts a Result into its JSON response.
func GenerateResponse(result Result) responses.ScheduleResponse {
	m := result.Metrics
	return responses.ScheduleResponse{
		Algorithm:             result.Algorithm.String(),
		Timeline:              result.Timeline,
		TotalTime:             m.TotalTime,
		IdleTime:              m.IdleTime,
		AverageWaitingTime:    m.AverageWaitingTime,
		AverageResponseTime:   m.AverageResponseTime,
		AverageTurnAroundTime: m.AverageTurnAroundTime,
		CpuUtilization:        m.CpuUtilization,
		CpuThroughput:         m.CpuThroughput,
		ContextSwitches:       m.ContextSwitches,
		Details:               m.Details,
	}
}
