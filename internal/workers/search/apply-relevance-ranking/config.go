// internal/workers/search/apply-relevance-ranking/config.go
package applyrelevanceranking

import (
	"time"

	"influencer-search-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
	}
}
