// internal/workers/search/get-search-suggestions/handler.go
package getsearchsuggestions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"influencer-search-workers/internal/common/camunda"
	apperrors "influencer-search-workers/internal/common/errors"
	"influencer-search-workers/internal/common/logger"
	"influencer-search-workers/internal/common/metrics"
	"influencer-search-workers/internal/common/observability"
	"influencer-search-workers/internal/common/validation"
	"influencer-search-workers/internal/search/keywords"
	"influencer-search-workers/internal/search/profiles"
)

const (
	TaskType = "get-search-suggestions"

	// Shorter queries match too much to be useful as suggestions.
	minQueryLength = 2
	defaultLimit   = 5
)

var (
	ErrNilInput            = errors.New("input cannot be nil")
	ErrSuggestionFailed    = errors.New("PROFILE_QUERY_FAILED")
	ErrKeywordLookupFailed = errors.New("KEYWORD_LOOKUP_FAILED")
)

type Handler struct {
	config    *Config
	store     profiles.Insights
	keywords  keywords.Suggester
	validator *validation.Validator
	reporter  *camunda.JobReporter
	obs       *observability.Observability
	logger    logger.Logger
}

func NewHandler(config *Config, store profiles.Insights, kw keywords.Suggester, validator *validation.Validator, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		store:     store,
		keywords:  kw,
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

	query := strings.TrimSpace(input.Query)
	if utf8.RuneCountInString(query) < minQueryLength {
		return emptyOutput(), nil
	}

	limit := h.config.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	kind := string(h.store.Kind())
	start := time.Now()
	found, err := h.store.Suggest(ctx, query, limit)
	metrics.ProfileStoreQueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, profiles.ErrIndexNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSuggestionFailed, err)
	}

	names, err := h.keywords.Suggest(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeywordLookupFailed, err)
	}

	output := &Output{
		Names:      found.Names,
		Niches:     found.Niches,
		Categories: found.Categories,
		Keywords:   names,
	}
	total := len(output.Names) + len(output.Niches) + len(output.Categories) + len(output.Keywords)
	h.obs.RecordResultSize(ctx, TaskType, total)
	h.logger.Debug("suggestions built", map[string]interface{}{
		"query": query,
		"total": total,
	})
	return output, nil
}

func (h *Handler) toStandardError(ctx context.Context, err error) error {
	kind := string(h.store.Kind())
	switch {
	case errors.Is(err, ErrNilInput):
		return apperrors.NewInputValidationFailedError(err.Error())
	case errors.Is(err, profiles.ErrIndexNotFound):
		return apperrors.NewProfileIndexMissingError(h.config.Index, err)
	case ctx.Err() == context.DeadlineExceeded && errors.Is(err, ErrKeywordLookupFailed):
		return apperrors.NewKeywordLookupTimeoutError(err)
	case errors.Is(err, ErrKeywordLookupFailed):
		return apperrors.NewKeywordLookupFailedError(err)
	case ctx.Err() == context.DeadlineExceeded:
		return apperrors.NewProfileStoreTimeoutError(kind, err)
	default:
		return apperrors.NewProfileQueryFailedError(kind, err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
