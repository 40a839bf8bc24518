package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/skylib11/Share-Market-Analysis/internal/config"
	"github.com/skylib11/Share-Market-Analysis/internal/pipeline"
	"github.com/skylib11/Share-Market-Analysis/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] pipeline starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	fetcher := pipeline.NewFetcher(cfg)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// One-shot mode: run both stages and exit.
	if cfg.Schedule.Cron == "" {
		if err := pipeline.RunAll(cfg, fetcher); err != nil {
			log.Fatalf("[FATAL] pipeline: %v", err)
		}
		log.Println("[INFO] pipeline finished")
		return
	}

	// Daemon mode: run the full pipeline on the configured schedule.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx)
	if err := sched.Register(cfg.Schedule.Cron, func() {
		if err := pipeline.RunAll(cfg, fetcher); err != nil {
			log.Printf("[WARN] scheduled run failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("[FATAL] register schedule: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing pipeline now")
		go func() {
			if err := pipeline.RunAll(cfg, fetcher); err != nil {
				log.Printf("[WARN] initial run failed: %v", err)
			}
		}()
	}

	log.Printf("[INFO] pipeline scheduled on %q. Press Ctrl+C to stop.", cfg.Schedule.Cron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] pipeline stopped")
}
