package splitter_test

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/splitter"
)

func newTestSplitter() *splitter.Splitter {
	return splitter.New(&config.SplitterConfig{RenderDPI: 72})
}

func TestSplit_SingleImagePassthrough(t *testing.T) {
	for _, tc := range []struct {
		contentType string
		wantMime    string
	}{
		{"image/png", "image/png"},
		{"image/jpeg", "image/jpeg"},
		{"image/jpg", "image/jpeg"},
		{"image/jpeg; charset=binary", "image/jpeg"},
	} {
		t.Run(tc.contentType, func(t *testing.T) {
			data := []byte("fake image bytes")

			pages, err := newTestSplitter().Split(context.Background(), data, tc.contentType)

			require.NoError(t, err)
			require.Len(t, pages, 1)
			assert.Equal(t, 1, pages[0].Number)
			assert.Equal(t, data, pages[0].Image, "bytes pass through unchanged")
			assert.Equal(t, tc.wantMime, pages[0].MimeType)
		})
	}
}

func TestSplit_UnreadablePDFContentType(t *testing.T) {
	_, err := newTestSplitter().Split(context.Background(), []byte("definitely not a pdf"), "application/pdf")

	assert.ErrorIs(t, err, domain.ErrUnreadableDocument)
}

func TestSplit_EmptyContentTypeTreatedAsPDF(t *testing.T) {
	_, err := newTestSplitter().Split(context.Background(), []byte("garbage"), "")

	assert.ErrorIs(t, err, domain.ErrUnreadableDocument)
}

func TestSplit_UnknownContentTypeFallsBackToSingleImage(t *testing.T) {
	data := []byte("mystery bytes that are not a pdf")

	pages, err := newTestSplitter().Split(context.Background(), data, "application/octet-stream")

	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, data, pages[0].Image)
	assert.Equal(t, "image/png", pages[0].MimeType)
}

func TestSplit_MultiPagePDF(t *testing.T) {
	requirePdftoppm(t)

	pdf := buildPDF(t, 3)

	pages, err := newTestSplitter().Split(context.Background(), pdf, "application/pdf")

	require.NoError(t, err)
	require.Len(t, pages, 3)
	for i, page := range pages {
		assert.Equal(t, i+1, page.Number, "pages numbered 1..N with no gaps")
		assert.Equal(t, "image/png", page.MimeType)
		assert.True(t, bytes.HasPrefix(page.Image, []byte("\x89PNG")), "rendered page is a PNG")
	}
}

func TestSplit_SinglePagePDFUnknownContentType(t *testing.T) {
	requirePdftoppm(t)

	pdf := buildPDF(t, 1)

	// Branch 3: unrecognized content type, bytes are a readable PDF.
	pages, err := newTestSplitter().Split(context.Background(), pdf, "binary/octet-stream")

	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "image/png", pages[0].MimeType)
}

func requirePdftoppm(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		t.Skip("pdftoppm not installed")
	}
}

// buildPDF assembles a minimal but valid PDF with the given number of blank
// pages, computing xref offsets as it goes.
func buildPDF(t *testing.T, pageCount int) []byte {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int

	addObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, pageCount)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}

	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), pageCount))
	for i := 0; i < pageCount; i++ {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n", 3+i))
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefPos)

	return buf.Bytes()
}
