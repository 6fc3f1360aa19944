// Package pdf composes rendered markup into a paginated A4 document
// using an isolated headless Chrome instance per call.
package pdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"debrief/internal/fault"
)

// A4 paper in inches, with a wider bottom margin to make room for the
// footer template.
const (
	paperWidthIn   = 8.27
	paperHeightIn  = 11.69
	marginSideIn   = 0.5
	marginTopIn    = 0.5
	marginBottomIn = 0.75
)

// DefaultTimeout bounds one composition, browser launch included.
const DefaultTimeout = 60 * time.Second

// defaultSettleDelay gives the page time to fetch any remote fonts or
// images referenced by the markup before printing.
const defaultSettleDelay = 500 * time.Millisecond

// Compositor turns self-contained markup into PDF bytes. The zero
// value is usable; each ToPDF call owns its own browser process, so a
// single Compositor is safe for concurrent use.
type Compositor struct {
	Timeout     time.Duration
	SettleDelay time.Duration
	Logger      *slog.Logger

	// Now feeds the footer date; overridable in tests.
	Now func() time.Time

	// Seams for tests that must not launch a real browser.
	newBrowser func(ctx context.Context) (*browser, error)
	runFunc    func(ctx context.Context, actions ...chromedp.Action) error
}

// browser is the scoped headless-Chrome resource for one composition.
// Close releases every context regardless of how the run ended.
type browser struct {
	ctx     context.Context
	cancels []context.CancelFunc
}

func (b *browser) Close() {
	for i := len(b.cancels) - 1; i >= 0; i-- {
		b.cancels[i]()
	}
}

func launchBrowser(ctx context.Context) (*browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	return &browser{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{allocCancel, browserCancel},
	}, nil
}

// ToPDF loads markup into a fresh headless browser and prints it as a
// paginated A4 document with background graphics and a date/page-number
// footer. The browser is torn down on every exit path. Failures are
// *fault.RenderError.
func (c *Compositor) ToPDF(ctx context.Context, markup string) ([]byte, error) {
	const op = "compose pdf"

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	settle := c.SettleDelay
	if settle <= 0 {
		settle = defaultSettleDelay
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := c.Now
	if now == nil {
		now = time.Now
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	newBrowser := c.newBrowser
	if newBrowser == nil {
		newBrowser = launchBrowser
	}
	run := c.runFunc
	if run == nil {
		run = chromedp.Run
	}

	logger.InfoContext(ctx, "composing pdf", "markup_bytes", len(markup), "timeout", timeout)

	b, err := newBrowser(ctx)
	if err != nil {
		return nil, &fault.RenderError{Op: op, Err: fmt.Errorf("launch browser: %w", err)}
	}
	defer b.Close()

	var pdf []byte
	err = run(b.ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("get frame tree: %w", err)
			}
			return page.SetDocumentContent(frameTree.Frame.ID, markup).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Settle so remote fonts/images referenced by the markup load.
		chromedp.Sleep(settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginLeft(marginSideIn).
				WithMarginRight(marginSideIn).
				WithMarginTop(marginTopIn).
				WithMarginBottom(marginBottomIn).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<span></span>`).
				WithFooterTemplate(footerTemplate(now())).
				Do(ctx)
			if err != nil {
				return fmt.Errorf("print to pdf: %w", err)
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &fault.RenderError{Op: op, Err: err}
	}
	if len(pdf) == 0 {
		return nil, &fault.RenderError{Op: op, Err: fmt.Errorf("browser produced an empty document")}
	}

	logger.InfoContext(ctx, "pdf composed", "bytes", len(pdf))
	return pdf, nil
}

// footerTemplate builds the Chrome print footer: generation date on
// the left, auto-incrementing page counter on the right. Chrome fills
// the pageNumber/totalPages spans itself.
func footerTemplate(now time.Time) string {
	return fmt.Sprintf(`<div style="width:100%%; font-size:8px; padding:0 0.5in; color:#5a6878; display:flex; justify-content:space-between;">`+
		`<span>Generated %s</span>`+
		`<span>Page <span class="pageNumber"></span> of <span class="totalPages"></span></span>`+
		`</div>`, now.Format("January 2, 2006"))
}
