package mockapi

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains mock backend parameters.
type Config struct {
	Addr         string        `env:"MOCKAPI_ADDR" envDefault:":8000"`
	SecretKey    string        `env:"MOCKAPI_SECRET_KEY" envDefault:"devsecret"`
	SessionTTL   time.Duration `env:"MOCKAPI_SESSION_TTL" envDefault:"1h"`
	BcryptCost   int           `env:"MOCKAPI_BCRYPT_COST" envDefault:"10"`
	PlanDays     int           `env:"MOCKAPI_PLAN_DAYS" envDefault:"7"`
	ImageBaseURL string        `env:"MOCKAPI_IMAGE_BASE_URL" envDefault:"https://images.mock.local"`
	LogFormat    string        `env:"MOCKAPI_LOG_FORMAT" envDefault:"console"`
	LogLevel     string        `env:"MOCKAPI_LOG_LEVEL" envDefault:"info"`

	AllowedOrigins []string `env:"MOCKAPI_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
