package schedulers

import "cpu-scheduler-sim/internal/core"

// ScheduleShortestRemainingTimeFirst re-evaluates the ready set at every
// time unit and runs the process with the least remaining time. Units of
// the same process in a row share one block.
func ScheduleShortestRemainingTimeFirst(processes []core.Process) core.Timeline {
	runtime := core.NewRuntimeProcesses(processes)
	remaining := func(p *core.RuntimeProcess) int {
		return p.Remaining
	}

	cpu := core.NewCpu()
	for completed := 0; completed < len(runtime); {
		next := selectNext(runtime, cpu.Clock(), remaining)
		if next == nil {
			arrival, ok := nextArrival(runtime, cpu.Clock())
			if !ok {
				break
			}
			cpu.IdleUntil(arrival)
			continue
		}
		cpu.Step(next)
		if next.Done() {
			completed++
		}
	}
	return cpu.Timeline()
}
