package parser

import (
	"encoding/json"

	"billscan/internal/domain"
)

// Usage metadata field names vary across API versions: the REST API returns
// camelCase names, older SDK surfaces snake_case ones. Each logical count is
// resolved by trying known aliases in priority order.
var (
	totalTokenAliases  = []string{"totalTokenCount", "total_token_count", "totalTokens", "total_tokens"}
	inputTokenAliases  = []string{"promptTokenCount", "prompt_token_count", "inputTokenCount", "input_token_count", "input_tokens"}
	outputTokenAliases = []string{"candidatesTokenCount", "candidates_token_count", "outputTokenCount", "output_token_count", "output_tokens"}
)

// ResolveUsage extracts token counts from a provider's usage metadata object.
// Missing or unrecognizable fields default to 0; a nil metadata map yields a
// zero Usage. Never an error condition.
func ResolveUsage(meta map[string]any) domain.Usage {
	return domain.Usage{
		TotalTokens:  firstInt(meta, totalTokenAliases),
		InputTokens:  firstInt(meta, inputTokenAliases),
		OutputTokens: firstInt(meta, outputTokenAliases),
	}
}

// firstInt returns the first alias present in meta with a usable numeric
// value, or 0.
func firstInt(meta map[string]any, aliases []string) int {
	for _, key := range aliases {
		v, ok := meta[key]
		if !ok {
			continue
		}
		if n, ok := asInt(v); ok {
			return n
		}
	}
	return 0
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
	}
	return 0, false
}
