package port

import (
	"context"

	"billscan/internal/domain"
)

// DocumentFetcher retrieves raw document bytes and a content-type hint from a URL.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// PageSplitter turns raw document bytes into an ordered, non-empty sequence
// of per-page images numbered 1..N.
type PageSplitter interface {
	Split(ctx context.Context, data []byte, contentType string) ([]domain.Page, error)
}

// PageExtractor extracts structured line items from a single page. It never
// returns an error: all failure modes degrade to an empty-items result so a
// single malformed page does not abort the request.
type PageExtractor interface {
	ExtractPage(ctx context.Context, page domain.Page) (domain.PageExtraction, domain.Usage)
}
