package config

import (
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
)

// Planner strategies.
const (
	PlanModeSequential = "sequential"
	PlanModeBackend    = "backend"
)

// Config holds runtime settings for the wardrobe CLI.
//
// Fields:
//   - APIBaseURL: root URL of the wardrobe backend.
//   - RequestTimeout: per-request HTTP timeout.
//   - DataDir: directory holding the local session database.
//   - Temperature: default temperature (°C) sent with suggestions and plans.
//   - PlanHorizon / PlanMode / PlanLabels / PlanStepDelay: weekly planner
//     settings; PlanMode is "sequential" or "backend".
//   - FlashSuccessTTL / FlashErrorTTL: how long upload banners stay visible.
//   - LogFormat / LogLevel: see logging.New.
type Config struct {
	APIBaseURL      string        `env:"WARDROBE_API_URL"`
	RequestTimeout  time.Duration `env:"WARDROBE_REQUEST_TIMEOUT"`
	DataDir         string        `env:"WARDROBE_DATA_DIR"`
	Temperature     float64       `env:"WARDROBE_TEMPERATURE"`
	PlanHorizon     int           `env:"WARDROBE_PLAN_HORIZON"`
	PlanMode        string        `env:"WARDROBE_PLAN_MODE"`
	PlanLabels      string        `env:"WARDROBE_PLAN_LABELS"`
	PlanStepDelay   time.Duration `env:"WARDROBE_PLAN_STEP_DELAY"`
	FlashSuccessTTL time.Duration `env:"WARDROBE_FLASH_SUCCESS_TTL"`
	FlashErrorTTL   time.Duration `env:"WARDROBE_FLASH_ERROR_TTL"`
	LogFormat       string        `env:"WARDROBE_LOG_FORMAT"`
	LogLevel        string        `env:"WARDROBE_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 30 * time.Second
	c.DataDir = ".wardrobe"
	c.Temperature = 22
	c.PlanHorizon = 3
	c.PlanMode = PlanModeSequential
	c.PlanLabels = models.LabelsRelative
	c.PlanStepDelay = 300 * time.Millisecond
	c.FlashSuccessTTL = 3 * time.Second
	c.FlashErrorTTL = 5 * time.Second
	c.LogFormat = "console"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
