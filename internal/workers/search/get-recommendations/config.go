// internal/workers/search/get-recommendations/config.go
package getrecommendations

import (
	"time"

	"influencer-search-workers/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	DefaultLimit int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:      config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		DefaultLimit: cfg.Search.RecommendationLimit,
	}
}
