package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"cpu-scheduler-sim/internal/core"
	"cpu-scheduler-sim/internal/registry"
	"cpu-scheduler-sim/internal/report"
	"cpu-scheduler-sim/internal/schedulers"
)

var ErrInvalidArgs = errors.New("invalid args")

func main() {
	algorithm := flag.String("algorithm", "all", "fcfs, sjf, srtf, priority, rr or all")
	quantum := flag.Int("quantum", 2, "round robin time quantum")
	flag.Parse()
	defer glog.Flush()

	if err := run(os.Stdout, *algorithm, *quantum, flag.Args()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}

func run(w io.Writer, algorithm string, quantum int, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: must give a scheduling file to process", ErrInvalidArgs)
	}
	processes, err := loadProcessingFile(args[0])
	if err != nil {
		return err
	}
	if len(processes) == 0 {
		return fmt.Errorf("%w: %s holds no processes", core.ErrInvalidInput, args[0])
	}

	if algorithm == "all" {
		results, err := schedulers.SimulateAll(processes, quantum)
		if err != nil {
			return err
		}
		report.RenderAll(w, results)
		return nil
	}

	a, err := schedulers.ParseAlgorithm(algorithm)
	if err != nil {
		return err
	}
	result, err := schedulers.Run(a, processes, quantum)
	if err != nil {
		return err
	}
	report.Render(w, result)
	return nil
}

func loadProcessingFile(path string) ([]core.Process, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: error opening scheduling file: %v", ErrInvalidArgs, err)
	}
	defer f.Close()

	processes, err := registry.ReadProcesses(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return processes, nil
}
