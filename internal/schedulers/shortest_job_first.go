package schedulers

import "cpu-scheduler-sim/internal/core"

// ScheduleShortestJobFirst is non-preemptive: whenever the cpu is free the
// ready process with the smallest burst runs to completion.
func ScheduleShortestJobFirst(processes []core.Process) core.Timeline {
	return scheduleNonPreemptive(processes, func(p *core.RuntimeProcess) int {
		return p.Burst
	})
}
