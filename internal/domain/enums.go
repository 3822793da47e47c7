package domain

// PageType classifies a bill page.
type PageType string

const (
	PageTypeBillDetail PageType = "Bill Detail"
	PageTypeFinalBill  PageType = "Final Bill"
	PageTypePharmacy   PageType = "Pharmacy"
)

// ValidPageTypes is the set of page types the model is allowed to return.
// Anything else defaults to PageTypeBillDetail.
var ValidPageTypes = map[PageType]bool{
	PageTypeBillDetail: true,
	PageTypeFinalBill:  true,
	PageTypePharmacy:   true,
}

// ImageContentTypes maps recognized still-image content-type fragments to
// their normalized MIME type. Content-type headers from arbitrary servers
// are unreliable, so matching is by substring (see splitter).
var ImageContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
}

// DefaultImageMimeType is assumed when the input cannot be identified as a
// paginated document and carries no recognized image content type.
const DefaultImageMimeType = "image/png"
