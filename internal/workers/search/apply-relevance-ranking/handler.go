// internal/workers/search/apply-relevance-ranking/handler.go
package applyrelevanceranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"influencer-search-workers/internal/common/camunda"
	apperrors "influencer-search-workers/internal/common/errors"
	"influencer-search-workers/internal/common/logger"
	"influencer-search-workers/internal/common/observability"
	"influencer-search-workers/internal/common/validation"
	"influencer-search-workers/internal/models"
)

const (
	TaskType = "apply-relevance-ranking"
)

var (
	ErrNilInput      = errors.New("input cannot be nil")
	ErrRankingFailed = errors.New("RANKING_FAILED")
)

type Handler struct {
	config    *Config
	validator *validation.Validator
	reporter  *camunda.JobReporter
	obs       *observability.Observability
	logger    logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		validator: validator,
		reporter:  camunda.NewJobReporter(TaskType, log, obs),
		obs:       obs,
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := camunda.DecodeVariables(job, h.validator, &input); err != nil {
		h.reporter.Fail(client, job, started, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.reporter.Fail(client, job, started, apperrors.NewRankingFailedError(err.Error()))
		return
	}

	h.reporter.Complete(client, job, started, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	start := time.Now()
	f := input.Filters

	field, err := EffectiveSortField(f.SortBy, f.CampaignObjective)
	if err != nil {
		return nil, err
	}
	less, err := lessFunc(field, f.SortOrder == models.SortAsc)
	if err != nil {
		return nil, err
	}

	ranked := dedupe(input.ScoredInfluencers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(&ranked[i], &ranked[j])
	})

	page := paginate(ranked, f.Skip, f.Limit)
	h.obs.RecordResultSize(ctx, TaskType, len(page))

	duration := time.Since(start).Milliseconds()
	h.logger.Info("ranking completed", map[string]interface{}{
		"inputCount":  len(input.ScoredInfluencers),
		"outputCount": len(page),
		"sortField":   field,
		"durationMs":  duration,
	})
	if duration > 500 {
		h.logger.Warn("ranking exceeded 500ms", map[string]interface{}{"durationMs": duration})
	}

	return &Output{
		Count:     len(page),
		Total:     len(ranked),
		SortField: field,
		Data:      page,
	}, nil
}

// EffectiveSortField maps the requested sort key to the compared attribute.
// A campaign objective overrides it: awareness ranks by reach, sales by
// engagement, and with no specific objective the default and followers
// sorts rank by match score.
func EffectiveSortField(sortBy models.SortField, objective models.CampaignObjective) (string, error) {
	field, ok := models.SortFieldMap[sortBy]
	if !ok && sortBy != "" {
		return "", fmt.Errorf("%w: unknown sort field '%s'", ErrRankingFailed, sortBy)
	}

	switch objective {
	case models.ObjectiveAwareness:
		return models.SortFieldMap[models.SortFollowers], nil
	case models.ObjectiveSales:
		return models.SortFieldMap[models.SortEngagement], nil
	case models.ObjectiveBoth, "":
		if sortBy == "" || sortBy == models.SortFollowers {
			return models.SortFieldMap[models.SortMatchScore], nil
		}
		return field, nil
	default:
		return "", fmt.Errorf("%w: unknown campaign objective '%s'", ErrRankingFailed, objective)
	}
}

func lessFunc(field string, asc bool) (func(a, b *models.ScoredInfluencer) bool, error) {
	var cmp func(a, b *models.ScoredInfluencer) int

	switch field {
	case "totalFollowers":
		cmp = func(a, b *models.ScoredInfluencer) int { return compareNum(float64(a.TotalFollowers), float64(b.TotalFollowers)) }
	case "avgEngagement":
		cmp = func(a, b *models.ScoredInfluencer) int { return compareNum(a.AvgEngagement, b.AvgEngagement) }
	case "rating.average":
		cmp = func(a, b *models.ScoredInfluencer) int { return compareNum(a.Rating.Average, b.Rating.Average) }
	case "totalCollaborations":
		cmp = func(a, b *models.ScoredInfluencer) int {
			return compareNum(float64(a.TotalCollaborations), float64(b.TotalCollaborations))
		}
	case "createdAt":
		cmp = func(a, b *models.ScoredInfluencer) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case "name":
		cmp = func(a, b *models.ScoredInfluencer) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case "matchScore":
		cmp = func(a, b *models.ScoredInfluencer) int { return compareNum(float64(a.MatchScore), float64(b.MatchScore)) }
	default:
		return nil, fmt.Errorf("%w: cannot sort by '%s'", ErrRankingFailed, field)
	}

	if asc {
		return func(a, b *models.ScoredInfluencer) bool { return cmp(a, b) < 0 }, nil
	}
	return func(a, b *models.ScoredInfluencer) bool { return cmp(a, b) > 0 }, nil
}

func compareNum(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// dedupe keeps the first occurrence of every profile ID. Profiles without
// an ID are always kept.
func dedupe(in []models.ScoredInfluencer) []models.ScoredInfluencer {
	out := make([]models.ScoredInfluencer, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if s.ID != "" {
			if seen[s.ID] {
				continue
			}
			seen[s.ID] = true
		}
		out = append(out, s)
	}
	return out
}

// paginate returns the page starting at skip. A limit of zero or less
// returns everything.
func paginate(ranked []models.ScoredInfluencer, skip, limit int) []models.ScoredInfluencer {
	if limit <= 0 {
		return ranked
	}
	if skip < 0 {
		skip = 0
	}
	if skip >= len(ranked) {
		return []models.ScoredInfluencer{}
	}
	end := skip + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[skip:end]
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
