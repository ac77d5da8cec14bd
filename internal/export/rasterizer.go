package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"resume-builder/internal/render"
)

// ChromeRasterizer screenshots a rendered page in headless Chrome. The
// viewport matches the page geometry exactly and the device scale
// factor provides the oversampling, so the capture is the page and
// nothing else.
type ChromeRasterizer struct {
	// Timeout bounds one rasterization. Zero means 60s.
	Timeout time.Duration
	// Path overrides Chrome binary discovery; falls back to the
	// CHROME_PATH environment variable.
	Path string
}

// NewChromeRasterizer constructs a ChromeRasterizer.
func NewChromeRasterizer() *ChromeRasterizer {
	return &ChromeRasterizer{}
}

func (r *ChromeRasterizer) Rasterize(ctx context.Context, page render.Page, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultRasterScale
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	execPath := r.Path
	if execPath == "" {
		execPath = os.Getenv("CHROME_PATH")
	}
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	runCtx, cancelRun := context.WithTimeout(cctx, timeout)
	defer cancelRun()

	// Chrome reads the page from disk; file:// keeps font and asset
	// resolution consistent with local development.
	tmpDir, err := os.MkdirTemp("", "export-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(page.HTML), 0o644); err != nil {
		return nil, err
	}

	var (
		fontsReady bool
		pngBuf     []byte
	)
	err = chromedp.Run(runCtx,
		chromedp.EmulateViewport(int64(page.PixelWidth()), int64(page.PixelHeight()), chromedp.EmulateScale(scale)),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Screenshotting before web fonts finish loading produces
		// fallback glyphs; wait for the font set to settle.
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady, func(p *cdpruntime.EvaluateParams) *cdpruntime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.FullScreenshot(&pngBuf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome rasterize: %w", err)
	}
	if len(pngBuf) == 0 {
		return nil, fmt.Errorf("chrome rasterize: empty capture")
	}
	return pngBuf, nil
}

var _ Rasterizer = (*ChromeRasterizer)(nil)
