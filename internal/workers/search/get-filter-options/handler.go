// internal/workers/search/get-filter-options/handler.go
package getfilteroptions

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
	"influencer-search-workers/internal/search/profiles"
)

const (
	TaskType = "get-filter-options"

	defaultFacetLimit = 20
)

var (
	ErrNilInput          = errors.New("input cannot be nil")
	ErrAggregationFailed = errors.New("PROFILE_QUERY_FAILED")
)

type Handler struct {
	config    *Config
	store     profiles.Insights
	validator *validation.Validator
	reporter  *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, store profiles.Insights, validator *validation.Validator, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		store:     store,
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
		h.reporter.Fail(client, job, started, h.toStandardError(ctx, err))
		return
	}

	h.reporter.Complete(client, job, started, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.FacetLimit
	}
	if limit <= 0 {
		limit = defaultFacetLimit
	}

	kind := string(h.store.Kind())
	start := time.Now()
	options, err := h.store.FilterOptions(ctx, limit)
	metrics.ProfileStoreQueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, profiles.ErrIndexNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrAggregationFailed, err)
	}

	h.logger.Info("filter options aggregated", map[string]interface{}{
		"store":      kind,
		"platforms":  len(options.Platforms),
		"niches":     len(options.Niches),
		"categories": len(options.Categories),
		"countries":  len(options.Countries),
	})
	return &Output{FilterOptions: *options}, nil
}

func (h *Handler) toStandardError(ctx context.Context, err error) error {
	kind := string(h.store.Kind())
	switch {
	case errors.Is(err, ErrNilInput):
		return apperrors.NewInputValidationFailedError(err.Error())
	case errors.Is(err, profiles.ErrIndexNotFound):
		return apperrors.NewProfileIndexMissingError(h.config.Index, err)
	case ctx.Err() == context.DeadlineExceeded:
		return apperrors.NewProfileStoreTimeoutError(kind, err)
	default:
		return apperrors.NewProfileQueryFailedError(kind, err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
