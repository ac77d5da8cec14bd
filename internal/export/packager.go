package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"resume-builder/internal/render"
)

// A4 in millimeters.
const (
	a4WidthMM  = 210.0
	a4HeightMM = 297.0
)

// packagePDF embeds the rasterized page into a single-page A4 PDF with
// zero margins. The image keeps the page's aspect ratio and is centered
// on whichever axis has slack.
func packagePDF(png []byte, page render.Page) ([]byte, error) {
	if len(png) == 0 {
		return nil, fmt.Errorf("empty raster")
	}
	if page.WidthIn <= 0 || page.HeightIn <= 0 {
		return nil, fmt.Errorf("invalid page geometry %gx%g", page.WidthIn, page.HeightIn)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	opt := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("page", opt, bytes.NewReader(png))

	aspect := page.WidthIn / page.HeightIn
	width := a4WidthMM
	height := width / aspect
	if height > a4HeightMM {
		height = a4HeightMM
		width = height * aspect
	}
	x := (a4WidthMM - width) / 2
	y := (a4HeightMM - height) / 2
	doc.ImageOptions("page", x, y, width, height, false, opt, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
