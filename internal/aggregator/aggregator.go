package aggregator

import (
	"encoding/json"
	"strconv"
	"strings"

	"billscan/internal/domain"
)

// summaryKeywords flag rows the model leaked despite prompt instructions.
// Matching is a case-insensitive substring check on the item name. This is a
// second, independent enforcement of the exclusion already requested in the
// prompt; keep both layers.
var summaryKeywords = []string{"total", "subtotal", "sub total", "grand total", "net amount"}

// PageResult pairs one page's extraction with the token usage of its model call.
type PageResult struct {
	Extraction domain.PageExtraction
	Usage      domain.Usage
}

// Aggregate merges per-page results into the final response schema,
// sanitizing items and summing usage. Page and item order are preserved.
// IsSuccess is unconditionally true: failures upstream are encoded as empty
// item lists, not a false flag.
func Aggregate(results []PageResult) *domain.ExtractionResponse {
	resp := &domain.ExtractionResponse{
		IsSuccess: true,
		Data: domain.ExtractionData{
			PagewiseLineItems: make([]domain.PageLineItems, 0, len(results)),
		},
	}

	for _, r := range results {
		resp.TokenUsage.Add(r.Usage)

		billItems := SanitizeItems(r.Extraction.Items)
		resp.Data.TotalItemCount += len(billItems)
		resp.Data.PagewiseLineItems = append(resp.Data.PagewiseLineItems, domain.PageLineItems{
			PageNo:    r.Extraction.PageNo,
			PageType:  r.Extraction.PageType,
			BillItems: billItems,
		})
	}

	return resp
}

// SanitizeItems converts raw model items into schema-conformant BillItems:
// names are trimmed, summary rows dropped, numeric fields coerced with 0.0
// on any failure. Idempotent over already-sanitized values.
func SanitizeItems(items []domain.RawItem) []domain.BillItem {
	out := make([]domain.BillItem, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if isSummaryRow(name) {
			continue
		}
		out = append(out, domain.BillItem{
			ItemName:     name,
			ItemAmount:   coerceFloat(item.Amount),
			ItemRate:     coerceFloat(item.Rate),
			ItemQuantity: coerceFloat(item.Quantity),
		})
	}
	return out
}

func isSummaryRow(name string) bool {
	lowered := strings.ToLower(name)
	for _, kw := range summaryKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// coerceFloat converts a raw JSON value to float64, defaulting to 0.0 for
// absent, null, or malformed values. Never raises.
func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0.0
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0.0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0.0
		}
		return f
	default:
		return 0.0
	}
}
