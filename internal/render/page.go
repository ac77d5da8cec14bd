package render

// Page geometry is fixed: layout never depends on the runtime viewport.
// Interactive previews draw on a US-Letter canvas scaled by the caller's
// zoom factor; print mode renders at full native inches for exact
// rasterization.
const (
	PageWidthIn  = 8.5
	PageHeightIn = 11.0

	// CSSPixelsPerInch is the CSS reference pixel density, used to size
	// the off-screen viewport for rasterization.
	CSSPixelsPerInch = 96
)

// Mode selects between the interactive preview and the print-fidelity
// renderer.
type Mode string

const (
	ModeInteractive Mode = "interactive"
	ModePrint       Mode = "print"
)

// Options control one render call.
type Options struct {
	Mode Mode
	// Zoom scales the interactive canvas; ignored in print mode. Zero
	// means 1.0.
	Zoom float64
}

// Page is the laid-out result of a render call.
type Page struct {
	HTML       string
	TemplateID string
	// WidthIn/HeightIn are the physical page dimensions after zoom.
	WidthIn  float64
	HeightIn float64
}

// PixelWidth returns the page width in whole CSS pixels.
func (p Page) PixelWidth() int {
	return int(p.WidthIn * CSSPixelsPerInch)
}

// PixelHeight returns the page height in whole CSS pixels.
func (p Page) PixelHeight() int {
	return int(p.HeightIn * CSSPixelsPerInch)
}

func (o Options) zoom() float64 {
	if o.Mode == ModePrint {
		return 1.0
	}
	if o.Zoom <= 0 {
		return 1.0
	}
	return o.Zoom
}
