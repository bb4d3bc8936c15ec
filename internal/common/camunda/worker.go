// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"

	"influencer-search-workers/internal/common/config"
	"influencer-search-workers/internal/common/errors"
	"influencer-search-workers/internal/common/logger"
	"influencer-search-workers/internal/common/metrics"
	"influencer-search-workers/internal/common/observability"
)

const sendTimeout = 10 * time.Second

// StartWorker opens a job worker for taskType. It returns nil when the
// worker is disabled in config.
func StartWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler, log *zap.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	active := metrics.WorkerJobsActive.WithLabelValues(taskType)
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(func(c worker.JobClient, job entities.Job) {
			active.Inc()
			defer active.Dec()
			handler(c, job)
		}).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return jobWorker
}

// JobReporter completes or fails jobs of one task type and records the
// outcome in both metric pipelines.
type JobReporter struct {
	taskType string
	logger   logger.Logger
	errs     *errors.ErrorHandler
	obs      *observability.Observability
}

// NewJobReporter builds a reporter. obs may be nil.
func NewJobReporter(taskType string, log logger.Logger, obs *observability.Observability) *JobReporter {
	return &JobReporter{
		taskType: taskType,
		logger:   log,
		errs:     errors.NewErrorHandler(log),
		obs:      obs,
	}
}

// Complete sends output as the job variables.
func (r *JobReporter) Complete(client worker.JobClient, job entities.Job, started time.Time, output interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.Fail(client, job, started, errors.NewInternalError(fmt.Errorf("encode job output: %w", err)))
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
	}

	metrics.ObserveJob(r.taskType, started, "")
	r.obs.RecordJob(ctx, r.taskType, "completed", time.Since(started))
}

// Fail reports err through the BPMN error handler.
func (r *JobReporter) Fail(client worker.JobClient, job entities.Job, started time.Time, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	stdErr := errors.AsStandardError(err)
	r.errs.HandleJobError(ctx, client, job, stdErr)

	metrics.ObserveJob(r.taskType, started, string(stdErr.Code))
	r.obs.RecordJob(ctx, r.taskType, "failed", time.Since(started))
}
