package main

import (
	"fmt"
	"log"

	"billscan/internal/config"
	"billscan/internal/extractor"
	"billscan/internal/fetcher"
	"billscan/internal/handler"
	"billscan/internal/parser"
	_ "billscan/internal/parser/gemini" // register the gemini provider
	"billscan/internal/router"
	"billscan/internal/service"
	"billscan/internal/splitter"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model, err := parser.NewVisionModel(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to initialize vision model: %w", err)
	}
	if cfg.Parser.APIKey == "" {
		log.Printf("warning: no model API key configured; extraction calls will fail")
	}

	// Pipeline stages
	docFetcher := fetcher.New(&cfg.Fetcher)
	pageSplitter := splitter.New(&cfg.Splitter)
	pageExtractor := extractor.New(model, cfg.Parser.MaxConcurrent)

	extractionSvc := service.NewExtractionService(docFetcher, pageSplitter, pageExtractor)

	extractH := handler.NewExtractHandler(extractionSvc)
	healthH := handler.NewHealthHandler(cfg)

	r := router.Setup(cfg, extractH, healthH)

	log.Printf("Server starting on %s (model=%s, provider=%s)", cfg.Server.Port, cfg.Parser.DefaultModel, cfg.Parser.Provider)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
