// internal/workers/search/resolve-keywords/handler.go
package resolvekeywords

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
	"influencer-search-workers/internal/common/observability"
	"influencer-search-workers/internal/common/validation"
	"influencer-search-workers/internal/search/keywords"
)

const (
	TaskType = "resolve-keywords"
)

var (
	ErrNilInput            = errors.New("criteria cannot be nil")
	ErrKeywordLookupFailed = errors.New("KEYWORD_LOOKUP_FAILED")
)

type Handler struct {
	config    *Config
	store     keywords.Store
	validator *validation.Validator
	reporter  *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, store keywords.Store, validator *validation.Validator, log logger.Logger, obs *observability.Observability) *Handler {
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
	if input == nil || input.Criteria == nil {
		return nil, ErrNilInput
	}
	c := *input.Criteria

	var err error
	if c.WordKeywordIDs, err = h.match(ctx, c.SearchWords); err != nil {
		return nil, err
	}
	if c.Niche != "" {
		if c.NicheKeywordIDs, err = h.match(ctx, []string{c.Niche}); err != nil {
			return nil, err
		}
	} else {
		c.NicheKeywordIDs = []string{}
	}
	if c.FilterKeywordIDs, err = h.match(ctx, c.KeywordTerms); err != nil {
		return nil, err
	}

	output := &Output{
		Criteria:          c,
		WordKeywordIDs:    c.WordKeywordIDs,
		NicheKeywordIDs:   c.NicheKeywordIDs,
		FilterKeywordIDs:  c.FilterKeywordIDs,
		MatchedKeywordIDs: c.MatchedKeywordIDs(),
	}

	h.logger.Info("keywords resolved", map[string]interface{}{
		"wordMatches":   len(output.WordKeywordIDs),
		"nicheMatches":  len(output.NicheKeywordIDs),
		"filterMatches": len(output.FilterKeywordIDs),
		"matched":       len(output.MatchedKeywordIDs),
	})
	return output, nil
}

func (h *Handler) match(ctx context.Context, terms []string) ([]string, error) {
	if len(terms) == 0 {
		return []string{}, nil
	}
	ids, err := h.store.Match(ctx, terms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeywordLookupFailed, err)
	}
	return ids, nil
}

func (h *Handler) toStandardError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, ErrNilInput):
		return apperrors.NewInputValidationFailedError(err.Error())
	case ctx.Err() == context.DeadlineExceeded:
		return apperrors.NewKeywordLookupTimeoutError(err)
	default:
		return apperrors.NewKeywordLookupFailedError(err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
