package main

import (
	"flag"
	"fmt"

	"github.com/golang/glog"

	"cpu-scheduler-sim/api"
	"cpu-scheduler-sim/config"
	"cpu-scheduler-sim/internal/registry"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg := config.GetSchedulerConfig()

	processes := registry.NewRegistry()
	store := registry.NewFileStore(cfg.StorePath)
	if cfg.StoreAutoload {
		loaded, err := store.Load()
		if err != nil {
			glog.Fatalf("loading processes: %v", err)
		}
		if err := processes.Replace(loaded); err != nil {
			glog.Fatalf("loading processes: %v", err)
		}
	}

	app := api.NewApp()
	api.RegisterRoutes(app.Group("/api").Group("/v1"), api.NewSchedulerHandlerImpl(cfg, processes, store))

	glog.Infof("listening on :%d", cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		glog.Fatalln(err)
	}
}
