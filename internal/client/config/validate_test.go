package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantMsg string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "relative url", mutate: func(c *Config) { c.APIBaseURL = "localhost:8000" }, wantMsg: "not absolute"},
		{name: "zero timeout", mutate: func(c *Config) { c.RequestTimeout = 0 }, wantMsg: "request timeout"},
		{name: "no data dir", mutate: func(c *Config) { c.DataDir = "" }, wantMsg: "data dir"},
		{name: "horizon", mutate: func(c *Config) { c.PlanHorizon = 0 }, wantMsg: "plan horizon"},
		{name: "mode", mutate: func(c *Config) { c.PlanMode = "parallel" }, wantMsg: `unknown plan mode "parallel"`},
		{name: "labels", mutate: func(c *Config) { c.PlanLabels = "dates" }, wantMsg: `unknown plan labels "dates"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	c := Config{}
	err := c.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	for _, s := range []string{"api base url", "request timeout", "data dir", "plan horizon", "plan mode", "plan labels"} {
		assert.Contains(t, err.Error(), s)
	}
}
