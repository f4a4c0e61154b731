package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/user-analytics/internal/config"
	"github.com/Sternrassler/user-analytics/pkg/api"
	"github.com/Sternrassler/user-analytics/pkg/cache"
	"github.com/Sternrassler/user-analytics/pkg/logging"
	"github.com/Sternrassler/user-analytics/pkg/notify"
	"github.com/Sternrassler/user-analytics/pkg/process"
	"github.com/Sternrassler/user-analytics/pkg/report"
)

// runResult summarizes a completed pipeline run.
type runResult struct {
	Users     int
	Posts     int
	Artifacts report.Artifacts
	EmailSent bool
	Duration  time.Duration
}

func newRunCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the full fetch, process and report pipeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logCfg := logging.DefaultConfig()
			logCfg.Level = logging.LogLevel(cfg.Logging.Level)
			logCfg.Pretty = cfg.Logging.Pretty
			logging.Setup(logCfg)

			result, err := executePipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", result.Artifacts.DocumentPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")

	return cmd
}

// executePipeline runs fetch, normalization, aggregation, reporting and
// notification in sequence. Fetch failures degrade to partial data; an empty
// result after processing aborts the run.
func executePipeline(ctx context.Context, cfg *config.Config) (*runResult, error) {
	logger := logging.NewLogger("pipeline")
	start := time.Now()

	apiCfg := api.DefaultConfig(cfg.API.BaseURL)
	apiCfg.Timeout = cfg.API.Timeout
	apiCfg.MaxRetries = cfg.API.MaxRetries
	apiCfg.PageSize = cfg.API.PageSize
	apiCfg.MaxPages = cfg.API.MaxPages
	apiCfg.Cache = connectCache(ctx, cfg)

	client, err := api.New(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	rawUsers := client.FetchAll(ctx, "users")
	rawPosts := client.FetchAll(ctx, "posts")

	users := process.NormalizeUsers(rawUsers)
	posts := process.NormalizePosts(rawPosts)

	err = process.Aggregate(users, posts)
	if err != nil {
		return nil, fmt.Errorf("aggregating metrics: %w", err)
	}

	process.SortByPostCount(users)

	err = process.ValidateForReport(users)
	if err != nil {
		return nil, err
	}

	generator, err := report.NewGenerator(cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("preparing output directory: %w", err)
	}

	artifacts, err := generator.Generate(users, "user_analytics_report")
	if err != nil {
		return nil, fmt.Errorf("generating report: %w", err)
	}

	result := &runResult{
		Users:     len(users),
		Posts:     len(posts),
		Artifacts: artifacts,
	}

	if cfg.Email.Enabled {
		notifier := notify.NewEmailNotifier(client)
		result.EmailSent = notifier.Send(ctx, notify.Report{
			Recipient:    cfg.Email.Recipient,
			ArtifactPath: artifacts.DocumentPath,
			ReportName:   "user_analytics_report",
			UserCount:    len(users),
			AvgChars:     process.OverallAvgChars(users),
		})
	}

	result.Duration = time.Since(start)

	logger.Info().
		Int("users", result.Users).
		Int("posts", result.Posts).
		Str("document", artifacts.DocumentPath).
		Bool("email_sent", result.EmailSent).
		Dur("duration", result.Duration).
		Msg("Pipeline complete")

	return result, nil
}

// connectCache dials Redis when caching is enabled. A failed connection is
// logged and the run continues uncached.
func connectCache(ctx context.Context, cfg *config.Config) *cache.Manager {
	if !cfg.Cache.Enabled {
		return nil
	}

	logger := logging.NewLogger("cache")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})

	pingErr := redisClient.Ping(ctx).Err()
	if pingErr != nil {
		logger.Warn().
			Err(pingErr).
			Str("addr", cfg.Cache.RedisAddr).
			Msg("Redis unavailable, continuing without cache")

		return nil
	}

	return cache.NewManager(redisClient, cfg.Cache.TTL)
}
