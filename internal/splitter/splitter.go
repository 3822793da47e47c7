package splitter

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"billscan/internal/config"
	"billscan/internal/domain"
)

// Splitter turns a downloaded document into an ordered sequence of per-page
// images. PDF pages are rasterized to PNG with pdftoppm (poppler-utils);
// pdfcpu is used to validate the document and count pages. Content-type
// headers from arbitrary servers are unreliable, so the splitter prefers
// degraded-but-present output over outright failure.
type Splitter struct {
	dpi      int
	pdftoppm string
}

// New creates a Splitter from config.
func New(cfg *config.SplitterConfig) *Splitter {
	dpi := cfg.RenderDPI
	if dpi <= 0 {
		dpi = 150
	}
	bin := cfg.Pdftoppm
	if bin == "" {
		bin = "pdftoppm"
	}
	return &Splitter{dpi: dpi, pdftoppm: bin}
}

// Split converts document bytes into pages. Three explicit branches:
//
//  1. content type contains "pdf", or is empty: rasterize as a PDF; an
//     unreadable document is a hard error.
//  2. content type names a known image subtype: the whole input is one page,
//     bytes passed through unchanged.
//  3. anything else: try the PDF path; if it fails in any way, treat the
//     input as a single opaque image page.
func (s *Splitter) Split(ctx context.Context, data []byte, contentType string) ([]domain.Page, error) {
	switch {
	case strings.Contains(contentType, "pdf") || contentType == "":
		pages, err := s.splitPDF(ctx, data)
		if err != nil {
			return nil, err
		}
		return pages, nil

	case imageMimeType(contentType) != "":
		return []domain.Page{{Number: 1, Image: data, MimeType: imageMimeType(contentType)}}, nil

	default:
		pages, err := s.splitPDF(ctx, data)
		if err != nil {
			log.Printf("splitter: content type %q not a readable PDF, assuming single image: %v", contentType, err)
			return []domain.Page{{Number: 1, Image: data, MimeType: domain.DefaultImageMimeType}}, nil
		}
		return pages, nil
	}
}

// imageMimeType returns the normalized MIME type when the content type names
// a recognized still-image subtype, or "" otherwise.
func imageMimeType(contentType string) string {
	for fragment, mime := range domain.ImageContentTypes {
		if strings.Contains(contentType, fragment) {
			return mime
		}
	}
	return ""
}

// splitPDF rasterizes every page of a PDF to a PNG image, in page order,
// numbered from 1.
func (s *Splitter) splitPDF(ctx context.Context, data []byte) ([]domain.Page, error) {
	pageCount, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableDocument, err)
	}
	if pageCount == 0 {
		return nil, domain.ErrNoPages
	}

	tmpDir, err := os.MkdirTemp("", "billscan-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("%w: creating temp dir: %v", domain.ErrUnreadableDocument, err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "document.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("%w: writing temp file: %v", domain.ErrUnreadableDocument, err)
	}

	pages := make([]domain.Page, 0, pageCount)
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		img, err := s.renderPage(ctx, pdfPath, tmpDir, pageNum)
		if err != nil {
			return nil, fmt.Errorf("%w: rendering page %d: %v", domain.ErrUnreadableDocument, pageNum, err)
		}
		pages = append(pages, domain.Page{Number: pageNum, Image: img, MimeType: "image/png"})
	}

	return pages, nil
}

// renderPage renders a single PDF page to PNG bytes using pdftoppm.
// pdfcpu can extract embedded images but cannot render a page, hence the
// external poppler dependency.
func (s *Splitter) renderPage(ctx context.Context, pdfPath, tmpDir string, pageNum int) ([]byte, error) {
	prefix := filepath.Join(tmpDir, fmt.Sprintf("page_%04d", pageNum))
	pageStr := strconv.Itoa(pageNum)

	cmd := exec.CommandContext(ctx, s.pdftoppm,
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", strconv.Itoa(s.dpi),
		"-singlefile",
		pdfPath,
		prefix,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	// pdftoppm with -singlefile creates <prefix>.png
	img, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}
	return img, nil
}
