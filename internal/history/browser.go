package history

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// RodFactory launches stealth headless Chrome sessions. The stealth profile,
// realistic user-agent, and fixed viewport are required to get a usable
// response from the anti-bot-guarded page.
type RodFactory struct {
	Headless        bool
	NavigateTimeout time.Duration // hard bound on navigation + network settle
	SelectorTimeout time.Duration // separate bound on the target table appearing
}

// NewRodFactory returns a factory with the production timeout bounds.
func NewRodFactory(headless bool) *RodFactory {
	return &RodFactory{
		Headless:        headless,
		NavigateTimeout: 60 * time.Second,
		SelectorTimeout: 25 * time.Second,
	}
}

// NewSession launches a browser and opens a stealth page with the desktop
// profile applied. The returned session owns the browser process.
func (f *RodFactory) NewSession(ctx context.Context) (Session, error) {
	l := launcher.New().Headless(f.Headless).NoSandbox(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("open stealth page: %w", err)
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: desktopUserAgent}); err != nil {
		browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("set user agent: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1366,
		Height:            768,
		DeviceScaleFactor: 1,
	}); err != nil {
		browser.Close()
		l.Cleanup()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	return &rodSession{
		launcher:        l,
		browser:         browser,
		page:            page,
		navigateTimeout: f.NavigateTimeout,
		selectorTimeout: f.SelectorTimeout,
	}, nil
}

type rodSession struct {
	launcher        *launcher.Launcher
	browser         *rod.Browser
	page            *rod.Page
	navigateTimeout time.Duration
	selectorTimeout time.Duration
}

// Navigate loads the target URL and waits for network activity to settle,
// bounded by the navigation timeout. Pages that never finish loading (ads,
// trackers) hit the bound instead of hanging the request.
func (s *rodSession) Navigate(url string) error {
	page := s.page.Timeout(s.navigateTimeout)
	if err := page.Navigate(url); err != nil {
		return err
	}
	if err := page.WaitLoad(); err != nil {
		return err
	}
	page.WaitRequestIdle(time.Second, nil, nil, nil)()
	return nil
}

// Rows waits for the selector to appear, bounded by the selector timeout
// (navigation succeeding does not guarantee the table rendered), then
// extracts every table row's cell texts.
func (s *rodSession) Rows(selector string) ([][]string, error) {
	page := s.page.Timeout(s.selectorTimeout)
	table, err := page.Element(selector)
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", selector, err)
	}

	trs, err := table.Elements("tr")
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}

	rows := make([][]string, 0, len(trs))
	for _, tr := range trs {
		tds, err := tr.Elements("td")
		if err != nil || len(tds) == 0 {
			continue // header rows have th cells only
		}
		cells := make([]string, 0, len(tds))
		for _, td := range tds {
			text, err := td.Text()
			if err != nil {
				text = ""
			}
			cells = append(cells, text)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// Close releases the browser process. Safe to call after partial failures.
func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Cleanup()
	return err
}
