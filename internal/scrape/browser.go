package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// ChromeReader renders a page in an isolated headless Chrome session
// and returns its HTML once the hourly forecast table has attached.
// Every Read owns its own browser; sessions are never shared across
// concurrent extractions, and the session is torn down on every exit
// path.
type ChromeReader struct {
	headless    bool
	userAgent   string
	navTimeout  time.Duration
	waitTimeout time.Duration
}

type ChromeOption func(*ChromeReader)

// WithHeadful runs the browser with a visible window, for local
// debugging of selector drift.
func WithHeadful() ChromeOption {
	return func(r *ChromeReader) { r.headless = false }
}

func WithNavTimeout(d time.Duration) ChromeOption {
	return func(r *ChromeReader) { r.navTimeout = d }
}

func NewChromeReader(opts ...ChromeOption) *ChromeReader {
	r := &ChromeReader{
		headless:    true,
		userAgent:   defaultUserAgent,
		navTimeout:  30 * time.Second,
		waitTimeout: 20 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ChromeReader) Read(ctx context.Context, url string) (string, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", r.headless),
		chromedp.UserAgent(r.userAgent),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	navCtx, cancelNav := context.WithTimeout(browserCtx, r.navTimeout)
	defer cancelNav()

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("navigate %s: %w", url, ErrExtractionTimeout)
		}
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}

	waitCtx, cancelWait := context.WithTimeout(browserCtx, r.waitTimeout)
	defer cancelWait()

	var html string
	err := chromedp.Run(waitCtx,
		chromedp.WaitVisible(hourlyTableSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("wait for forecast table on %s: %w", url, ErrExtractionTimeout)
		}
		return "", fmt.Errorf("capture %s: %w", url, err)
	}
	return html, nil
}
