package main

import (
	"log"
	"os"

	"github.com/skylib11/Share-Market-Analysis/internal/config"
	"github.com/skylib11/Share-Market-Analysis/internal/pipeline"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] preprocess starting...")

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

	if err := pipeline.RunPreprocess(cfg, fetcher); err != nil {
		log.Fatalf("[FATAL] preprocess: %v", err)
	}
	log.Println("[INFO] preprocess finished")
}
