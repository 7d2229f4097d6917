package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"

	"cpu-scheduler-sim/internal/core"
	"cpu-scheduler-sim/internal/schedulers"
)

const histogramBins = 5

// Render writes the title, Gantt line, schedule table and waiting time
// histogram of one simulation result.
func Render(w io.Writer, result schedulers.Result) {
	outputTitle(w, result.Algorithm.Title())
	outputGantt(w, result.Timeline)
	outputSchedule(w, result.Metrics)
	outputHistogram(w, result.Metrics)
}

// RenderAll renders every result in order.
func RenderAll(w io.Writer, results []schedulers.Result) {
	for _, result := range results {
		Render(w, result)
	}
}

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

func outputGantt(w io.Writer, timeline core.Timeline) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, block := range timeline {
		padding := ""
		if len(block.ProcessID) < 8 {
			padding = strings.Repeat(" ", (8-len(block.ProcessID))/2)
		}
		_, _ = fmt.Fprint(w, padding, block.ProcessID, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, block := range timeline {
		_, _ = fmt.Fprint(w, block.Start, "\t")
		if i == len(timeline)-1 {
			_, _ = fmt.Fprint(w, block.End)
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

func outputSchedule(w io.Writer, metrics schedulers.Metrics) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Response", "Exit"})
	for _, d := range metrics.Details {
		table.Append([]string{
			d.ProcessId,
			fmt.Sprint(d.Priority),
			fmt.Sprint(d.BurstTime),
			fmt.Sprint(d.ArrivalTime),
			fmt.Sprint(d.WaitingTime),
			fmt.Sprint(d.TurnAroundTime),
			fmt.Sprint(d.ResponseTime),
			fmt.Sprint(d.CompletionTime),
		})
	}
	table.SetFooter([]string{"", "", "",
		fmt.Sprintf("Utilization\n%.2f%%", metrics.CpuUtilization),
		fmt.Sprintf("Average\n%.2f", metrics.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", metrics.AverageTurnAroundTime),
		fmt.Sprintf("Average\n%.2f", metrics.AverageResponseTime),
		fmt.Sprintf("Throughput\n%.2f/t", metrics.CpuThroughput)})
	table.Render()
}

func outputHistogram(w io.Writer, metrics schedulers.Metrics) {
	if len(metrics.Details) == 0 {
		return
	}
	waits := make([]float64, 0, len(metrics.Details))
	for _, d := range metrics.Details {
		waits = append(waits, float64(d.WaitingTime))
	}
	_, _ = fmt.Fprintln(w, "Waiting time distribution")
	if spread(waits) == 0 {
		// a single bucket; nothing to plot
		_, _ = fmt.Fprintf(w, "%d processes waited %d\n\n", len(waits), metrics.Details[0].WaitingTime)
		return
	}
	hist := histogram.Hist(histogramBins, waits)
	histogram.Fprint(w, hist, histogram.Linear(5))
	_, _ = fmt.Fprintln(w)
}

func spread(values []float64) float64 {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return max - min
}
