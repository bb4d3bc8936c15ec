// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"influencer-search-workers/internal/common/camunda"
	"influencer-search-workers/internal/common/config"
	"influencer-search-workers/internal/common/database"
	"influencer-search-workers/internal/common/logger"
	"influencer-search-workers/internal/common/metrics"
	"influencer-search-workers/internal/common/observability"
	"influencer-search-workers/internal/common/validation"
	"influencer-search-workers/internal/search/keywords"
	"influencer-search-workers/internal/search/matchscore"
	"influencer-search-workers/internal/search/profiles"
	"influencer-search-workers/pkg/registry"

	arr "influencer-search-workers/internal/workers/search/apply-relevance-ranking"
	cms "influencer-search-workers/internal/workers/search/calculate-match-score"
	gfo "influencer-search-workers/internal/workers/search/get-filter-options"
	grc "influencer-search-workers/internal/workers/search/get-recommendations"
	gss "influencer-search-workers/internal/workers/search/get-search-suggestions"
	psq "influencer-search-workers/internal/workers/search/parse-search-query"
	qin "influencer-search-workers/internal/workers/search/query-influencers"
	rkw "influencer-search-workers/internal/workers/search/resolve-keywords"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog, err := logger.Build(cfg.Logging.Level, cfg.Logging.Format, cfg.App.Name)
	if err != nil {
		zapLog = logger.New("info", "console")
		zapLog.Warn("logger config invalid, using defaults", zap.Error(err))
	}
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("environment", cfg.App.Environment),
		zap.String("profileStore", cfg.Search.ProfileStore),
	)

	ctx := context.Background()

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, camunda.ClientConfigFrom(cfg.Camunda))
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL (keywords) ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected successfully")

	// --- Redis (keyword cache) ---
	redis := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	zapLog.Info("Redis connected successfully")

	pingers := map[string]database.Pinger{
		"postgres": pg,
		"redis":    redis,
		"zeebe":    database.PingerFunc(zeebe.HealthCheck),
	}

	// --- Profile store ---
	var (
		profileStore profiles.Store
		insights     profiles.Insights
		mongoClient  *database.MongoClient
	)
	switch cfg.Search.ProfileStore {
	case config.ProfileStoreMongo:
		err = retryWithBackoff(func() error {
			var err error
			mongoClient, err = database.NewMongo(ctx, cfg.Database.Mongo)
			if err != nil {
				return err
			}
			return mongoClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "MongoDB connection")
		if err != nil {
			zapLog.Fatal("mongodb failed after retries", zap.Error(err))
		}
		if err := mongoClient.EnsureInfluencerIndexes(ctx, cfg.Search.InfluencerCollection); err != nil {
			zapLog.Warn("influencer indexes not created", zap.Error(err))
		}
		mongoStore := profiles.NewMongoStore(mongoClient.DB.Collection(cfg.Search.InfluencerCollection), cfg.Search.MaxResults)
		profileStore, insights = mongoStore, mongoStore
		pingers["mongodb"] = mongoClient
		zapLog.Info("MongoDB connected successfully")

	default:
		var es *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch, nil)
			if err != nil {
				return err
			}
			return es.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		if err := es.EnsureIndex(ctx, cfg.Search.InfluencerIndex, profiles.IndexMapping); err != nil {
			zapLog.Warn("influencer index not created", zap.Error(err))
		}
		esStore := profiles.NewElasticsearchStore(es.Client, cfg.Search.InfluencerIndex, cfg.Search.MaxResults)
		profileStore, insights = esStore, esStore
		pingers["elasticsearch"] = es
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Shared search components ---
	reg, err := registry.LoadRegistry(cfg.Search.RegistryPath)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	validator, err := validation.NewValidator(reg)
	if err != nil {
		zapLog.Fatal("schema compilation failed", zap.Error(err))
	}

	scorer, err := matchscore.NewBatchScorer(cfg.Search.ScoringPoolSize, cfg.Search.ScoringParallelThreshold)
	if err != nil {
		zapLog.Fatal("scoring pool init failed", zap.Error(err))
	}
	if err := metrics.RegisterScoringPool(scorer.Running); err != nil {
		zapLog.Warn("scoring pool gauge not registered", zap.Error(err))
	}

	keywordCatalogue := keywords.NewPostgresStore(pg.DB)
	keywordStore := keywords.NewCachedStore(
		keywordCatalogue,
		redis.Client,
		cfg.Search.KeywordCacheDuration(),
		log,
	)

	// --- Workers ---
	handlers := map[string]worker.JobHandler{
		psq.TaskType: psq.NewHandler(psq.LoadConfig(cfg), validator, log, obs).Handle,
		rkw.TaskType: rkw.NewHandler(rkw.LoadConfig(cfg), keywordStore, validator, log, obs).Handle,
		qin.TaskType: qin.NewHandler(qin.LoadConfig(cfg), profileStore, validator, log, obs).Handle,
		cms.TaskType: cms.NewHandler(cms.LoadConfig(cfg), scorer, validator, log, obs).Handle,
		arr.TaskType: arr.NewHandler(arr.LoadConfig(cfg), validator, log, obs).Handle,
		grc.TaskType: grc.NewHandler(grc.LoadConfig(cfg), keywordStore, profileStore, scorer, validator, log, obs).Handle,
		gss.TaskType: gss.NewHandler(gss.LoadConfig(cfg), insights, keywordCatalogue, validator, log, obs).Handle,
		gfo.TaskType: gfo.NewHandler(gfo.LoadConfig(cfg), insights, validator, log, obs).Handle,
	}

	var workers []worker.JobWorker
	for taskType, handler := range handlers {
		if !validator.Has(taskType) {
			zapLog.Warn("no input schema registered", zap.String("taskType", taskType))
		}
		if w := camunda.StartWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handler, zapLog); w != nil {
			workers = append(workers, w)
		}
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		failed := database.FailedNames(database.CheckAll(checkCtx, pingers))
		if len(failed) > 0 {
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "not ready",
				"failed": failed,
				"time":   time.Now().Format(time.RFC3339),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
	}
	for _, w := range workers {
		w.AwaitClose()
	}
	scorer.Release()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if mongoClient != nil {
		if err := mongoClient.Close(shutdownCtx); err != nil {
			zapLog.Error("Error closing MongoDB client", zap.Error(err))
		}
	}
	if err := redis.Close(); err != nil {
		zapLog.Error("Error closing Redis client", zap.Error(err))
	}
	if err := pg.Close(); err != nil {
		zapLog.Error("Error closing PostgreSQL client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down meter provider", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
