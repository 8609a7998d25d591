package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/flagx"
	"github.com/dmitrijs2005/wardrobe/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Absent keys keep the value
// already in Config.
type JsonConfig struct {
	APIBaseURL      *string         `json:"api_base_url"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	DataDir         *string         `json:"data_dir"`
	Temperature     *float64        `json:"temperature"`
	PlanHorizon     *int            `json:"plan_horizon"`
	PlanMode        *string         `json:"plan_mode"`
	PlanLabels      *string         `json:"plan_labels"`
	PlanStepDelay   *timex.Duration `json:"plan_step_delay"`
	FlashSuccessTTL *timex.Duration `json:"flash_success_ttl"`
	FlashErrorTTL   *timex.Duration `json:"flash_error_ttl"`
	LogFormat       *string         `json:"log_format"`
	LogLevel        *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags; without one nothing is
// loaded. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setDuration(&cfg.RequestTimeout, jc.RequestTimeout)
	setString(&cfg.DataDir, jc.DataDir)
	if jc.Temperature != nil {
		cfg.Temperature = *jc.Temperature
	}
	if jc.PlanHorizon != nil {
		cfg.PlanHorizon = *jc.PlanHorizon
	}
	setString(&cfg.PlanMode, jc.PlanMode)
	setString(&cfg.PlanLabels, jc.PlanLabels)
	setDuration(&cfg.PlanStepDelay, jc.PlanStepDelay)
	setDuration(&cfg.FlashSuccessTTL, jc.FlashSuccessTTL)
	setDuration(&cfg.FlashErrorTTL, jc.FlashErrorTTL)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
