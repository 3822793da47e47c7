package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"billscan/internal/domain"
	"billscan/internal/parser"
	"billscan/internal/port"
)

// PageExtractor invokes the vision model once per page and repairs the
// response into a structured PageExtraction. It never fails the pipeline:
// every failure mode degrades to an empty-items result so one malformed page
// cannot abort a multi-page bill. A process-wide semaphore bounds concurrent
// outbound model calls across requests.
type PageExtractor struct {
	model port.VisionModel
	sem   chan struct{}
}

// New creates a PageExtractor. maxConcurrent bounds simultaneous model calls;
// values below 1 are treated as 1.
func New(model port.VisionModel, maxConcurrent int) *PageExtractor {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &PageExtractor{
		model: model,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

// ExtractPage runs the model against one page image and normalizes the
// output. Exactly one outbound model call per page; no retries, no caching.
func (e *PageExtractor) ExtractPage(ctx context.Context, page domain.Page) (domain.PageExtraction, domain.Usage) {
	select {
	case e.sem <- struct{}{}:
		defer func() { <-e.sem }()
	case <-ctx.Done():
		log.Printf("extractor: page %d: context done before model call: %v", page.Number, ctx.Err())
		return defaultExtraction(page.Number), domain.Usage{}
	}

	out, err := e.model.Generate(ctx, port.VisionInput{
		Prompt:   parser.BillPagePrompt,
		Image:    page.Image,
		MimeType: page.MimeType,
	})
	if err != nil {
		log.Printf("extractor: page %d: model call failed: %v", page.Number, err)
		return defaultExtraction(page.Number), domain.Usage{}
	}

	usage := parser.ResolveUsage(out.UsageMetadata)
	return normalize(page.Number, parser.CleanModelText(out.Text)), usage
}

// normalize parses cleaned model text and coerces it into a well-formed
// PageExtraction, substituting defaults wherever the model strayed from the
// requested shape.
func normalize(pageNum int, cleaned string) domain.PageExtraction {
	var raw struct {
		PageNo   any             `json:"page_no"`
		PageType string          `json:"page_type"`
		Items    json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		log.Printf("extractor: page %d: unparsable model output: %v", pageNum, err)
		return defaultExtraction(pageNum)
	}

	result := domain.PageExtraction{
		PageNo:   stringifyPageNo(raw.PageNo),
		PageType: domain.PageType(raw.PageType),
		Items:    []domain.RawItem{},
	}
	if result.PageNo == "" {
		result.PageNo = strconv.Itoa(pageNum)
	}
	if !domain.ValidPageTypes[result.PageType] {
		result.PageType = domain.PageTypeBillDetail
	}

	// items present but not a sequence of objects coerces to empty
	if len(raw.Items) > 0 {
		var items []domain.RawItem
		if err := json.Unmarshal(raw.Items, &items); err == nil && items != nil {
			result.Items = items
		}
	}

	return result
}

func defaultExtraction(pageNum int) domain.PageExtraction {
	return domain.PageExtraction{
		PageNo:   strconv.Itoa(pageNum),
		PageType: domain.PageTypeBillDetail,
		Items:    []domain.RawItem{},
	}
}

// stringifyPageNo renders whatever the model put in page_no as a string.
// Models return it as a string, a number, or not at all.
func stringifyPageNo(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", n))
	}
}
