package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string      backend base URL
//	-t int         request timeout in seconds
//	-d string      local data directory
//	-temp float    default temperature (°C)
//	-n int         planning horizon in days
//	-m string      planner mode: sequential or backend
//	-l string      plan day labels: relative or weekdays
//	-log string    log format: text, json, console, zerolog
//	-v string      log level: debug, info, warn, error
//
// Flags it does not know (such as -c) are filtered out first.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-temp", "-n", "-m", "-l", "-log", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	fs.Float64Var(&cfg.Temperature, "temp", cfg.Temperature, "default temperature")
	fs.IntVar(&cfg.PlanHorizon, "n", cfg.PlanHorizon, "planning horizon (days)")
	fs.StringVar(&cfg.PlanMode, "m", cfg.PlanMode, "planner mode")
	fs.StringVar(&cfg.PlanLabels, "l", cfg.PlanLabels, "plan day labels")
	fs.StringVar(&cfg.LogFormat, "log", cfg.LogFormat, "log format")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
