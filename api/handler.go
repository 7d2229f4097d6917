package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/glog"

	"cpu-scheduler-sim/config"
	"cpu-scheduler-sim/internal/core"
	"cpu-scheduler-sim/internal/registry"
	"cpu-scheduler-sim/internal/requests"
	"cpu-scheduler-sim/internal/responses"
	"cpu-scheduler-sim/internal/schedulers"
)

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	ShortestRemainingTimeFirst(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error

	ListProcesses(ctx *fiber.Ctx) error
	AddProcess(ctx *fiber.Ctx) error
	RemoveProcess(ctx *fiber.Ctx) error
	SaveProcesses(ctx *fiber.Ctx) error
	LoadProcesses(ctx *fiber.Ctx) error
	ScheduleProcesses(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config   *config.SchedulerConfig
	registry *registry.Registry
	store    registry.Store
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig, registry *registry.Registry, store registry.Store) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config, registry: registry, store: store}
}

// NewApp creates the fiber app the handlers run in. Handlers keep values
// parsed from requests in the registry, so fiber must not hand out strings
// backed by its reused request buffers.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{Immutable: true})
}

// RegisterRoutes mounts every handler on router, normally /api/v1.
func RegisterRoutes(router fiber.Router, h SchedulerHandler) {
	router.Post("/fcfs", h.FirstComeFirstServe)
	router.Post("/sjf", h.ShortestJobFirst)
	router.Post("/srtf", h.ShortestRemainingTimeFirst)
	router.Post("/priority", h.Priority)
	router.Post("/rr", h.RoundRobin)
	router.Post("/all", h.AllAlgorithms)

	processes := router.Group("/processes")
	processes.Get("/", h.ListProcesses)
	processes.Post("/", h.AddProcess)
	processes.Post("/save", h.SaveProcesses)
	processes.Post("/load", h.LoadProcesses)
	processes.Get("/schedule/:algorithm", h.ScheduleProcesses)
	processes.Delete("/:id", h.RemoveProcess)
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.FirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestJobFirst)
}

func (s *SchedulerHandlerImpl) ShortestRemainingTimeFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestRemainingTimeFirst)
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.Priority)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	request := new(requests.ScheduleRequests)
	if err := ctx.BodyParser(request); err != nil {
		return invalidRequestFormat(ctx)
	}
	processes := request.Processes()
	if err := s.limits().Check(processes); err != nil {
		return errorResponse(ctx, err)
	}
	results, err := schedulers.SimulateAll(processes, request.Quantum(s.config.RoundRobinTimeQuantum))
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]responses.ScheduleResponse, 0, len(results))
	for _, result := range results {
		response = append(response, schedulers.GenerateResponse(result))
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) ListProcesses(ctx *fiber.Ctx) error {
	return ctx.JSON(s.registry.List())
}

func (s *SchedulerHandlerImpl) AddProcess(ctx *fiber.Ctx) error {
	var job requests.Job
	if err := ctx.BodyParser(&job); err != nil {
		return invalidRequestFormat(ctx)
	}
	if err := s.registry.Add(job.Process()); err != nil {
		return errorResponse(ctx, err)
	}
	glog.V(1).Infof("pid: %s added to registry", job.ProcessId)
	return ctx.Status(fiber.StatusCreated).JSON(job.Process())
}

func (s *SchedulerHandlerImpl) RemoveProcess(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if err := s.registry.Remove(id); err != nil {
		return errorResponse(ctx, err)
	}
	glog.V(1).Infof("pid: %s removed from registry", id)
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (s *SchedulerHandlerImpl) SaveProcesses(ctx *fiber.Ctx) error {
	processes := s.registry.List()
	if err := s.store.Save(processes); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(fiber.Map{"saved": len(processes)})
}

func (s *SchedulerHandlerImpl) LoadProcesses(ctx *fiber.Ctx) error {
	processes, err := s.store.Load()
	if err != nil {
		return errorResponse(ctx, err)
	}
	if err := s.registry.Replace(processes); err != nil {
		return errorResponse(ctx, err)
	}
	return ctx.JSON(processes)
}

// ScheduleProcesses simulates the registry contents with the algorithm
// named in the path.
func (s *SchedulerHandlerImpl) ScheduleProcesses(ctx *fiber.Ctx) error {
	algorithm, err := schedulers.ParseAlgorithm(ctx.Params("algorithm"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	quantum := s.config.RoundRobinTimeQuantum
	if q := ctx.Query("quantum"); q != "" {
		if quantum, err = strconv.Atoi(q); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantum must be an integer"})
		}
	}
	return s.run(ctx, algorithm, s.registry.List(), quantum)
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, algorithm schedulers.Algorithm) error {
	request := new(requests.ScheduleRequests)
	if err := ctx.BodyParser(request); err != nil {
		return invalidRequestFormat(ctx)
	}
	return s.run(ctx, algorithm, request.Processes(), request.Quantum(s.config.RoundRobinTimeQuantum))
}

func (s *SchedulerHandlerImpl) run(ctx *fiber.Ctx, algorithm schedulers.Algorithm, processes []core.Process, quantum int) error {
	glog.V(1).Infof("running %s algorithm for %d processes", algorithm, len(processes))
	if err := s.limits().Check(processes); err != nil {
		return errorResponse(ctx, err)
	}
	result, err := schedulers.Run(algorithm, processes, quantum)
	if err != nil {
		return errorResponse(ctx, err)
	}
	glog.V(2).Infof("%s produced %d blocks, total time %d", algorithm, len(result.Timeline), result.Metrics.TotalTime)
	return ctx.JSON(schedulers.GenerateResponse(result))
}

func (s *SchedulerHandlerImpl) limits() core.Limits {
	return core.Limits{MaxTotalBurst: s.config.MaxTotalBurst, MaxHorizon: s.config.MaxHorizon}
}

func invalidRequestFormat(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request format"})
}

func errorResponse(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, registry.ErrProcessNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, registry.ErrDuplicateProcess):
		status = fiber.StatusConflict
	}
	if status == fiber.StatusInternalServerError {
		glog.Errorf("request %s %s failed: %v", ctx.Method(), ctx.Path(), err)
	}
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}
