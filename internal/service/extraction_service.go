package service

import (
	"context"
	"log"

	"billscan/internal/aggregator"
	"billscan/internal/domain"
	"billscan/internal/port"
)

// ExtractionService runs the full bill extraction pipeline for one request:
// fetch -> split -> extract each page -> aggregate. Each request builds its
// own private data graph; nothing is shared or persisted between requests.
type ExtractionService interface {
	ExtractBillData(ctx context.Context, documentURL string) (*domain.ExtractionResponse, error)
}

type extractionService struct {
	fetcher   port.DocumentFetcher
	splitter  port.PageSplitter
	extractor port.PageExtractor
}

// NewExtractionService creates an ExtractionService.
func NewExtractionService(fetcher port.DocumentFetcher, splitter port.PageSplitter, extractor port.PageExtractor) ExtractionService {
	return &extractionService{
		fetcher:   fetcher,
		splitter:  splitter,
		extractor: extractor,
	}
}

// ExtractBillData processes one document URL. Boundary errors (download,
// splitting) fail fast before any model call; per-page anomalies are absorbed
// by the extractor and never abort the request.
func (s *extractionService) ExtractBillData(ctx context.Context, documentURL string) (*domain.ExtractionResponse, error) {
	data, contentType, err := s.fetcher.Fetch(ctx, documentURL)
	if err != nil {
		return nil, err
	}

	pages, err := s.splitter.Split(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	// Pages are processed strictly one at a time, in page order.
	results := make([]aggregator.PageResult, 0, len(pages))
	for _, page := range pages {
		extraction, usage := s.extractor.ExtractPage(ctx, page)
		results = append(results, aggregator.PageResult{Extraction: extraction, Usage: usage})
	}

	resp := aggregator.Aggregate(results)
	log.Printf("extractionService: processed %d pages, %d items, %d tokens",
		len(pages), resp.Data.TotalItemCount, resp.TokenUsage.TotalTokens)
	return resp, nil
}
