// internal/workers/search/get-filter-options/config.go
package getfilteroptions

import (
	"time"

	"influencer-search-workers/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	FacetLimit int
	Index      string // reported in PROFILE_INDEX_NOT_FOUND
}

func LoadConfig(cfg *config.Config) *Config {
	index := cfg.Search.InfluencerIndex
	if cfg.Search.ProfileStore == config.ProfileStoreMongo {
		index = cfg.Search.InfluencerCollection
	}
	return &Config{
		Timeout:    config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		FacetLimit: cfg.Search.FacetLimit,
		Index:      index,
	}
}
