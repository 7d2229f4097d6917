package schedulers

import "cpu-scheduler-sim/internal/core"

// SchedulePriority is non-preemptive; lower priority values run first.
func SchedulePriority(processes []core.Process) core.Timeline {
	return scheduleNonPreemptive(processes, func(p *core.RuntimeProcess) int {
		return p.Priority
	})
}
