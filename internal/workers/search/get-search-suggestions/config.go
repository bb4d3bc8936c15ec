// internal/workers/search/get-search-suggestions/config.go
package getsearchsuggestions

import (
	"time"

	"influencer-search-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	Limit   int    // per suggestion kind
	Index   string // reported in PROFILE_INDEX_NOT_FOUND
}

func LoadConfig(cfg *config.Config) *Config {
	index := cfg.Search.InfluencerIndex
	if cfg.Search.ProfileStore == config.ProfileStoreMongo {
		index = cfg.Search.InfluencerCollection
	}
	return &Config{
		Timeout: config.GetDuration(config.GetWorkerConfig(cfg, TaskType).Timeout),
		Limit:   cfg.Search.SuggestionLimit,
		Index:   index,
	}
}
