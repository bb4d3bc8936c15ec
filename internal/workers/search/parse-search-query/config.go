// internal/workers/search/parse-search-query/config.go
package parsesearchquery

import (
	"time"

	"influencer-search-workers/internal/common/config"
)

type Config struct {
	Timeout     time.Duration
	MaxPageSize int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:     config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		MaxPageSize: cfg.Search.MaxPageSize,
	}
}
