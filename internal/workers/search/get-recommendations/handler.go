// internal/workers/search/get-recommendations/handler.go
package getrecommendations

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"influencer-search-workers/internal/common/camunda"
	apperrors "influencer-search-workers/internal/common/errors"
	"influencer-search-workers/internal/common/logger"
	"influencer-search-workers/internal/common/metrics"
	"influencer-search-workers/internal/common/observability"
	"influencer-search-workers/internal/common/validation"
	"influencer-search-workers/internal/models"
	"influencer-search-workers/internal/search/keywords"
	"influencer-search-workers/internal/search/matchscore"
	"influencer-search-workers/internal/search/profiles"
)

const (
	TaskType = "get-recommendations"

	defaultLimit = 10
)

var (
	ErrNilInput            = errors.New("input cannot be nil")
	ErrKeywordLookupFailed = errors.New("KEYWORD_LOOKUP_FAILED")
	ErrProfileQueryFailed  = errors.New("PROFILE_QUERY_FAILED")
	ErrScoringFailed       = errors.New("SCORING_FAILED")
)

type Handler struct {
	config    *Config
	keywords  keywords.Store
	profiles  profiles.Store
	scorer    *matchscore.BatchScorer
	validator *validation.Validator
	reporter  *camunda.JobReporter
	obs       *observability.Observability
	logger    logger.Logger
}

func NewHandler(
	config *Config,
	keywordStore keywords.Store,
	profileStore profiles.Store,
	scorer *matchscore.BatchScorer,
	validator *validation.Validator,
	log logger.Logger,
	obs *observability.Observability,
) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		keywords:  keywordStore,
		profiles:  profileStore,
		scorer:    scorer,
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
		h.reporter.Fail(client, job, started, h.toStandardError(ctx, err))
		return
	}

	h.reporter.Complete(client, job, started, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	criteria, err := h.buildCriteria(ctx, input)
	if err != nil {
		return nil, err
	}

	found, err := h.profiles.Find(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileQueryFailed, err)
	}

	inputs := make([]matchscore.Input, len(found))
	for i, inf := range found {
		inputs[i] = inf.ScoringInput(nil)
	}
	scores, err := h.scorer.ScoreAll(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}
	metrics.ObserveScores(scores)

	recs := make([]Recommendation, len(found))
	for i, inf := range found {
		recs[i] = Recommendation{
			Influencer:          inf,
			TotalFollowers:      inf.TotalFollowers(),
			AvgEngagement:       inf.AvgEngagement(),
			RecommendationScore: scores[i],
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].RecommendationScore > recs[j].RecommendationScore
	})

	h.obs.RecordResultSize(ctx, TaskType, len(recs))
	h.logger.Info("recommendations ready", map[string]interface{}{
		"objective": string(input.CampaignObjective),
		"store":     string(h.profiles.Kind()),
		"count":     len(recs),
	})

	return &Output{Count: len(recs), Data: recs}, nil
}

func (h *Handler) buildCriteria(ctx context.Context, input *Input) (*models.SearchCriteria, error) {
	floor := models.ObjectiveFloor(input.CampaignObjective)
	c := &models.SearchCriteria{
		Platforms:     cleanPlatforms(input.Platforms),
		PlatformFloor: &floor,
		Limit:         h.limit(input.Limit),
	}

	// budgets are whole currency units
	if input.Budget != nil {
		if budget := math.Floor(*input.Budget); budget > 0 {
			c.MaxPostPrice = &budget
		}
	}

	if niche := strings.TrimSpace(input.Niche); niche != "" {
		ids, err := h.keywords.Match(ctx, []string{niche})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeywordLookupFailed, err)
		}
		c.Niche = niche
		c.NicheKeywordIDs = ids
	}
	return c, nil
}

func (h *Handler) limit(requested int) int {
	if requested > 0 {
		return requested
	}
	if h.config.DefaultLimit > 0 {
		return h.config.DefaultLimit
	}
	return defaultLimit
}

func cleanPlatforms(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h *Handler) toStandardError(ctx context.Context, err error) error {
	kind := string(h.profiles.Kind())
	switch {
	case errors.Is(err, ErrNilInput):
		return apperrors.NewInputValidationFailedError(err.Error())
	case errors.Is(err, ErrKeywordLookupFailed):
		return apperrors.NewKeywordLookupFailedError(err)
	case errors.Is(err, ErrScoringFailed):
		return apperrors.NewScoringFailedError(err.Error())
	case ctx.Err() == context.DeadlineExceeded:
		return apperrors.NewProfileStoreTimeoutError(kind, err)
	default:
		return apperrors.NewProfileQueryFailedError(kind, err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
