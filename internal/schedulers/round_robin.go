package schedulers

import (
	"sort"

	"cpu-scheduler-sim/internal/core"
)

// ScheduleRoundRobin cycles over the processes in arrival order and gives
// every ready, unfinished process up to timeQuantum units per turn. A pass
// in which nothing could run idles the cpu until the next arrival.
func ScheduleRoundRobin(processes []core.Process, timeQuantum int) core.Timeline {
	runtime := core.NewRuntimeProcesses(processes)
	sort.SliceStable(runtime, func(i, j int) bool {
		return runtime[i].Arrival < runtime[j].Arrival
	})

	cpu := core.NewCpu()
	for completed := 0; completed < len(runtime); {
		executed := false
		for _, p := range runtime {
			if p.Done() || p.Arrival > cpu.Clock() {
				continue
			}
			cpu.Dispatch(p, timeQuantum)
			executed = true
			if p.Done() {
				completed++
			}
		}
		if executed {
			continue
		}
		arrival, ok := nextArrival(runtime, cpu.Clock())
		if !ok {
			break
		}
		cpu.IdleUntil(arrival)
	}
	return cpu.Timeline()
}
