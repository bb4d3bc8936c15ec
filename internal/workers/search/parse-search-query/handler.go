// internal/workers/search/parse-search-query/handler.go
package parsesearchquery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"influencer-search-workers/internal/common/camunda"
	apperrors "influencer-search-workers/internal/common/errors"
	"influencer-search-workers/internal/common/logger"
	"influencer-search-workers/internal/common/metrics"
	"influencer-search-workers/internal/common/observability"
	"influencer-search-workers/internal/common/validation"
	"influencer-search-workers/internal/models"
	"influencer-search-workers/internal/search/keywords"
	"influencer-search-workers/internal/search/queryparser"
)

const (
	TaskType = "parse-search-query"
)

var (
	ErrNilInput            = errors.New("input cannot be nil")
	ErrInvalidFilterFormat = errors.New("INVALID_FILTER_FORMAT")
)

type Handler struct {
	config    *Config
	validator *validation.Validator
	reporter  *camunda.JobReporter
	logger    logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
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
		h.reporter.Fail(client, job, started, toStandardError(err))
		return
	}

	h.reporter.Complete(client, job, started, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	filters, err := h.normalizeFilters(input.Filters)
	if err != nil {
		return nil, err
	}

	parsed := queryparser.Parse(input.Search)
	for _, intent := range parsed.Intents() {
		metrics.SearchIntentsDetected.WithLabelValues(intent).Inc()
	}

	output := &Output{
		SearchID:    uuid.New().String(),
		ParsedQuery: parsed,
		Criteria:    buildCriteria(parsed, filters),
		Filters:     filters,
	}

	h.logger.Info("search query parsed", map[string]interface{}{
		"searchId":  output.SearchID,
		"words":     len(parsed.SearchWords),
		"platforms": parsed.DetectedPlatforms,
		"country":   parsed.DetectedCountry,
		"intents":   parsed.Intents(),
	})
	return output, nil
}

// normalizeFilters trims and validates explicit filters. "all" is the
// UI value for no restriction and is treated as empty.
func (h *Handler) normalizeFilters(f models.SearchFilters) (models.SearchFilters, error) {
	f.Niche = clearAll(f.Niche)
	f.Location = clearAll(f.Location)
	f.Keywords = strings.TrimSpace(f.Keywords)
	platforms, err := normalizePlatforms(f.Platforms)
	if err != nil {
		return f, err
	}
	f.Platforms = platforms

	if f.SortBy != "" {
		if _, ok := models.SortFieldMap[f.SortBy]; !ok {
			return f, fmt.Errorf("%w: invalid sortBy '%s'", ErrInvalidFilterFormat, f.SortBy)
		}
	}

	switch f.SortOrder {
	case "":
		f.SortOrder = models.SortDesc
	case models.SortAsc, models.SortDesc:
	default:
		return f, fmt.Errorf("%w: invalid sortOrder '%s'", ErrInvalidFilterFormat, f.SortOrder)
	}

	if !f.CampaignObjective.Valid() {
		return f, fmt.Errorf("%w: invalid campaignObjective '%s'", ErrInvalidFilterFormat, f.CampaignObjective)
	}

	if f.Limit < 0 || f.Skip < 0 {
		return f, fmt.Errorf("%w: limit and skip must not be negative", ErrInvalidFilterFormat)
	}
	if h.config.MaxPageSize > 0 && f.Limit > h.config.MaxPageSize {
		f.Limit = h.config.MaxPageSize
	}

	if f.MinFollowers != nil && f.MaxFollowers != nil && *f.MaxFollowers > 0 && *f.MinFollowers > *f.MaxFollowers {
		return f, fmt.Errorf("%w: minFollowers %d exceeds maxFollowers %d", ErrInvalidFilterFormat, *f.MinFollowers, *f.MaxFollowers)
	}
	if f.MinEngagement != nil && f.MaxEngagement != nil && *f.MaxEngagement > 0 && *f.MinEngagement > *f.MaxEngagement {
		return f, fmt.Errorf("%w: minEngagement exceeds maxEngagement", ErrInvalidFilterFormat)
	}
	return f, nil
}

// buildCriteria merges explicit filters with what was read from the free
// text. An explicit value always wins; inferred values only fill gaps.
func buildCriteria(parsed queryparser.ParsedQuery, f models.SearchFilters) models.SearchCriteria {
	c := models.SearchCriteria{
		SearchWords:   parsed.SearchWords,
		Platforms:     f.Platforms,
		Niche:         f.Niche,
		KeywordTerms:  keywords.SplitCSV(f.Keywords),
		MinFollowers:  f.MinFollowers,
		MaxFollowers:  f.MaxFollowers,
		MinEngagement: f.MinEngagement,
		MaxEngagement: f.MaxEngagement,
	}

	if len(c.Platforms) == 0 {
		c.Platforms = parsed.DetectedPlatforms
	}

	if f.Location != "" {
		c.Country = queryparser.ResolveCountry(f.Location)
	} else {
		c.Country = parsed.DetectedCountry
	}

	if (f.MinFollowers == nil || *f.MinFollowers <= 0) && parsed.MinFollowers != nil {
		c.MinFollowers = parsed.MinFollowers
	}
	return c
}

func clearAll(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func normalizePlatforms(raw []string) ([]string, error) {
	out := []string{}
	seen := make(map[string]bool)
	for _, p := range raw {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || p == "all" || seen[p] {
			continue
		}
		if !queryparser.IsPlatform(p) {
			return nil, fmt.Errorf("%w: unknown platform '%s'", ErrInvalidFilterFormat, p)
		}
		seen[p] = true
		out = append(out, p)
	}
	return out, nil
}

func toStandardError(err error) error {
	if errors.Is(err, ErrInvalidFilterFormat) || errors.Is(err, ErrNilInput) {
		return apperrors.NewInvalidFilterFormatError(err.Error(), err)
	}
	return err
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
