package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/h-gmc/ev-charging/internal/config"
	"github.com/h-gmc/ev-charging/internal/engine"
	"github.com/h-gmc/ev-charging/internal/ingest"
	"github.com/h-gmc/ev-charging/internal/pipeline"
	"github.com/h-gmc/ev-charging/internal/recorder"
	"github.com/h-gmc/ev-charging/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ev-charging forecaster starting...")

	// Load config
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

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	src := ingest.NewCSVSource(cfg.Input.Path)
	p := pipeline.New(cfg, src, engine.NewForecaster(), rec)

	// One-shot unless a cron schedule is configured.
	if cfg.Schedule.Cron == "" {
		if err := p.Run(); err != nil {
			log.Fatalf("[FATAL] forecast: %v", err)
		}
		log.Println("[INFO] forecast complete")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, p.Run)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing forecast now")
		go sched.RunNow()
	}

	log.Printf("[INFO] recurring forecasts scheduled (%s). Press Ctrl+C to stop.", cfg.Schedule.Cron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] ev-charging forecaster stopped")
}
