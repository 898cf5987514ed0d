package boot

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env               string        `env:"ENV,default=dev"`
	DataDirectory     string        `env:"DATA_DIR,default=./data"`
	Addr              string        `env:"ADDR,default=:8080"`
	MetricsAddr       string        `env:"METRICS_ADDR,default=:8081"`
	SessionTTL        time.Duration `env:"SESSION_TTL,default=24h"`
	AllowSelfMessages bool          `env:"ALLOW_SELF_MESSAGES,default=false"`
	CookieName        string        `env:"COOKIE_NAME,default=parley_session"`
	CookieSecure      bool          `env:"COOKIE_SECURE,default=false"`
}

func Load() (Config, error) {
	config := Config{}
	if err := envconfig.Process(context.Background(), &config); err != nil {
		return Config{}, fmt.Errorf("parsing env vars: %w", err)
	}
	return config, nil
}

func (c Config) IsDevelopment() bool {
	return c.Env == "dev"
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
