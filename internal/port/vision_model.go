package port

import "context"

// VisionInput carries one page image plus extraction instructions.
type VisionInput struct {
	Prompt   string
	Image    []byte
	MimeType string
}

// VisionOutput is the raw result of one model invocation. UsageMetadata is
// the provider's usage object as a generic key-value view; field names vary
// across API versions, so callers resolve counts through parser.ResolveUsage.
type VisionOutput struct {
	Text          string
	UsageMetadata map[string]any
	Model         string
}

// VisionModel abstracts a hosted vision-language model: given an image and a
// prompt, it returns free-text output plus token-usage metadata.
type VisionModel interface {
	Generate(ctx context.Context, input VisionInput) (*VisionOutput, error)
}
