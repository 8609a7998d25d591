package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/wardrobe/internal/client/models"
)

var ErrInvalidConfig = errors.New("invalid config")

// Validate reports every setting that the CLI cannot start with.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		add("api base url %q is not absolute", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		add("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.DataDir == "" {
		add("data dir is empty")
	}
	if c.PlanHorizon < 1 {
		add("plan horizon must be at least 1, got %d", c.PlanHorizon)
	}
	switch c.PlanMode {
	case PlanModeSequential, PlanModeBackend:
	default:
		add("unknown plan mode %q", c.PlanMode)
	}
	switch c.PlanLabels {
	case models.LabelsRelative, models.LabelsWeekdays:
	default:
		add("unknown plan labels %q", c.PlanLabels)
	}
	if c.PlanStepDelay < 0 {
		add("plan step delay is negative")
	}

	return errors.Join(errs...)
}
