package requests

import "cpu-scheduler-sim/internal/core"

type Job struct {
	ProcessId   string `json:"id" form:"id"`
	ArrivalTime int    `json:"arrival" form:"arrival"`
	BurstTime   int    `json:"burst" form:"burst"`
	Priority    int    `json:"priority" form:"priority"`
}

func (j Job) Process() core.Process {
	return core.Process{
		ID:       j.ProcessId,
		Arrival:  j.ArrivalTime,
		Burst:    j.BurstTime,
		Priority: j.Priority,
	}
}

type ScheduleRequests struct {
	Jobs []Job `json:"processes"`
	// TimeQuantum is only read by round robin; nil selects the configured default.
	TimeQuantum *int `json:"time_quantum,omitempty"`
}

func (r *ScheduleRequests) Processes() []core.Process {
	processes := make([]core.Process, 0, len(r.Jobs))
	for _, job := range r.Jobs {
		processes = append(processes, job.Process())
	}
	return processes
}

// Quantum resolves the round robin quantum against the configured default.
func (r *ScheduleRequests) Quantum(defaultQuantum int) int {
	if r.TimeQuantum == nil {
		return defaultQuantum
	}
	return *r.TimeQuantum
}
