package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rss-firehose/cache"
	"rss-firehose/config"
	"rss-firehose/driver"
	"rss-firehose/orchestrator"
	"rss-firehose/renderer"
	"rss-firehose/server"
	"rss-firehose/service"
	"rss-firehose/utils/logger"
)

func main() {
	log := logger.Init()

	root := &cobra.Command{
		Use:          "rss-firehose",
		Short:        "Aggregate configured web feeds into an AI-summarized static digest",
		SilenceUsage: true,
	}
	root.AddCommand(renderCmd(log), serveCmd(log))

	if err := root.Execute(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func renderCmd(log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Run the pipeline once and write the rendered output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			runner, err := buildRunner(cfg, log)
			if err != nil {
				return err
			}

			runner.Run(cmd.Context())

			return nil
		},
	}
}

func serveCmd(log *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendered output and refresh it on a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			runner, err := buildRunner(cfg, log)
			if err != nil {
				return err
			}

			sched := server.NewScheduler(cfg.Server.RefreshCron, func() {
				runner.Run(context.Background())
			}, log)
			sched.Start()
			defer sched.Stop()

			srv := server.New(cfg.Site.PublicDir, cfg.Server, log)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				log.Info("shutting down", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				return srv.Shutdown(ctx)
			}
		},
	}
}

func buildRunner(cfg *config.Config, log *slog.Logger) (*orchestrator.Runner, error) {
	ren, err := renderer.New(cfg.Site.PublicDir, log)
	if err != nil {
		return nil, err
	}

	client := driver.NewChatCompletionClient(cfg.Summary, cfg.HTTP.Timeout, log)

	return orchestrator.NewRunner(
		cfg,
		service.NewSourceResolver(cfg.Sources, log),
		service.NewFeedFetcher(cfg.HTTP, log),
		service.NewBreakingNewsCollector(cfg.Breaking, cfg.HTTP, log),
		service.NewSummarizer(client, cfg.Summary, log),
		cache.New(cfg.Cache, log),
		ren,
		log,
	), nil
}
