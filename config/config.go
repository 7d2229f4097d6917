package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/spf13/viper"
)

type SchedulerConfig struct {
	Port                  int
	RoundRobinTimeQuantum int
	StorePath             string
	StoreAutoload         bool

	// MaxTotalBurst and MaxHorizon bound requests served over HTTP; 0 disables.
	MaxTotalBurst int
	MaxHorizon    int
}

var once sync.Once
var config *SchedulerConfig

// GetSchedulerConfig loads config.yaml from the working directory once.
// Startup cannot continue without a usable configuration.
func GetSchedulerConfig() *SchedulerConfig {
	once.Do(func() {
		var err error
		config, err = LoadSchedulerConfig("./")
		if err != nil {
			glog.Fatalln(err)
		}
	})

	return config
}

// LoadSchedulerConfig reads config.yaml from the first path that has one.
// Without a file the defaults apply; SCHEDSIM_* environment variables
// override both.
func LoadSchedulerConfig(paths ...string) (*SchedulerConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	v.SetEnvPrefix("schedsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.round_robin.time_quantum", 2)
	v.SetDefault("scheduler.limits.max_total_burst", 100000)
	v.SetDefault("scheduler.limits.max_horizon", 1000000)
	v.SetDefault("store.path", "processes.csv")
	v.SetDefault("store.autoload", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		glog.V(1).Infof("no config file found in %v, using defaults", paths)
	} else {
		glog.Infof("using config file %s", v.ConfigFileUsed())
	}

	c := &SchedulerConfig{
		Port:                  v.GetInt("port"),
		RoundRobinTimeQuantum: v.GetInt("scheduler.round_robin.time_quantum"),
		StorePath:             v.GetString("store.path"),
		StoreAutoload:         v.GetBool("store.autoload"),
		MaxTotalBurst:         v.GetInt("scheduler.limits.max_total_burst"),
		MaxHorizon:            v.GetInt("scheduler.limits.max_horizon"),
	}
	if c.RoundRobinTimeQuantum <= 0 {
		return nil, fmt.Errorf("scheduler.round_robin.time_quantum must be positive, got %d", c.RoundRobinTimeQuantum)
	}
	if c.MaxTotalBurst < 0 || c.MaxHorizon < 0 {
		return nil, fmt.Errorf("scheduler.limits must not be negative, got %d and %d", c.MaxTotalBurst, c.MaxHorizon)
	}
	return c, nil
}
