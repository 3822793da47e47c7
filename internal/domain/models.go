package domain

// Page is one rasterized image corresponding to one physical page of the
// input document. Numbers are 1-based and contiguous in document order.
type Page struct {
	Number   int
	Image    []byte
	MimeType string
}

// RawItem is a line item as the model returned it, before sanitization.
// Numeric fields keep whatever JSON type the model produced; the aggregator
// coerces them defensively.
type RawItem struct {
	Name     string `json:"name"`
	Rate     any    `json:"rate"`
	Quantity any    `json:"quantity"`
	Amount   any    `json:"amount"`
}

// PageExtraction is the structured result for a single page.
type PageExtraction struct {
	PageNo   string    `json:"page_no"`
	PageType PageType  `json:"page_type"`
	Items    []RawItem `json:"items"`
}

// Usage holds token counts for one or more model invocations.
type Usage struct {
	TotalTokens  int `json:"total_tokens"`
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Add accumulates another usage record into u.
func (u *Usage) Add(other Usage) {
	u.TotalTokens += other.TotalTokens
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// BillItem is a sanitized, schema-conformant line item.
type BillItem struct {
	ItemName     string  `json:"item_name"`
	ItemAmount   float64 `json:"item_amount"`
	ItemRate     float64 `json:"item_rate"`
	ItemQuantity float64 `json:"item_quantity"`
}

// PageLineItems groups the sanitized items of one page.
type PageLineItems struct {
	PageNo    string     `json:"page_no"`
	PageType  PageType   `json:"page_type"`
	BillItems []BillItem `json:"bill_items"`
}

// ExtractionData is the data section of the response.
// TotalItemCount always equals the sum of len(BillItems) across pages.
type ExtractionData struct {
	PagewiseLineItems []PageLineItems `json:"pagewise_line_items"`
	TotalItemCount    int             `json:"total_item_count"`
}

// ExtractionResponse is the sole externally visible output of the service.
type ExtractionResponse struct {
	IsSuccess  bool           `json:"is_success"`
	TokenUsage Usage          `json:"token_usage"`
	Data       ExtractionData `json:"data"`
}
