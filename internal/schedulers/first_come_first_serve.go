package schedulers

import (
	"sort"

	"cpu-scheduler-sim/internal/core"
)

// ScheduleFirstComeFirstServe runs processes to completion in arrival
// order. Equal arrivals keep their input order.
func ScheduleFirstComeFirstServe(processes []core.Process) core.Timeline {
	runtime := core.NewRuntimeProcesses(processes)
	sort.SliceStable(runtime, func(i, j int) bool {
		return runtime[i].Arrival < runtime[j].Arrival
	})

	cpu := core.NewCpu()
	for _, p := range runtime {
		cpu.IdleUntil(p.Arrival)
		cpu.Dispatch(p, p.Remaining)
	}
	return cpu.Timeline()
}
