// internal/workers/search/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"
	"errors"
	"fmt"
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
	"influencer-search-workers/internal/search/matchscore"
)

const (
	TaskType = "calculate-match-score"
)

var (
	ErrNilInput      = errors.New("input cannot be nil")
	ErrScoringFailed = errors.New("SCORING_FAILED")
)

type Handler struct {
	config    *Config
	scorer    *matchscore.BatchScorer
	validator *validation.Validator
	reporter  *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, scorer *matchscore.BatchScorer, validator *validation.Validator, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		scorer:    scorer,
		validator: validator,
		reporter:  camunda.NewJobReporter(TaskType, log, obs),
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
		h.reporter.Fail(client, job, started, apperrors.NewScoringFailedError(err.Error()))
		return
	}

	h.reporter.Complete(client, job, started, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	inputs := make([]matchscore.Input, len(input.Influencers))
	for i, inf := range input.Influencers {
		inputs[i] = inf.ScoringInput(input.MatchedKeywordIDs)
	}

	scores, err := h.scorer.ScoreAll(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoringFailed, err)
	}
	metrics.ObserveScores(scores)

	scored := make([]models.ScoredInfluencer, len(scores))
	for i, inf := range input.Influencers {
		scored[i] = models.NewScoredInfluencer(inf, scores[i])
	}

	h.logger.Info("match scores calculated", map[string]interface{}{
		"count":       len(scored),
		"bonusTagIds": len(input.MatchedKeywordIDs),
	})
	return &Output{ScoredInfluencers: scored}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
