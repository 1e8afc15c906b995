// Package news fetches recent headlines for a symbol from Google News RSS.
package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"stockpulse/internal/model"
)

// Client fetches recent news for a symbol.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	MaxItems   int
}

// NewClient creates a Google News RSS client.
func NewClient() *Client {
	return &Client{
		BaseURL:    "https://news.google.com/rss/search",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		MaxItems:   20,
	}
}

type rssResponse struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	PubDate string `xml:"pubDate"`
	Source  string `xml:"source"`
}

// Fetch returns recent headlines mentioning the symbol, newest first as the
// feed delivers them.
func (c *Client) Fetch(ctx context.Context, symbol string) ([]model.NewsItem, error) {
	q := url.QueryEscape(symbol + " stock")
	u := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", c.BaseURL, q)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news fetch: status %d", resp.StatusCode)
	}

	var rss rssResponse
	if err := xml.NewDecoder(resp.Body).Decode(&rss); err != nil {
		return nil, fmt.Errorf("news decode: %w", err)
	}

	items := make([]model.NewsItem, 0, len(rss.Channel.Items))
	for _, item := range rss.Channel.Items {
		if c.MaxItems > 0 && len(items) >= c.MaxItems {
			break
		}
		headline := item.Title
		// Google appends " - Publisher" to titles.
		if idx := strings.LastIndex(headline, " - "); idx > 0 {
			headline = headline[:idx]
		}
		published := ""
		if t, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
			published = t.Format("2006-01-02")
		} else if t, err := time.Parse(time.RFC1123, item.PubDate); err == nil {
			published = t.Format("2006-01-02")
		}
		items = append(items, model.NewsItem{
			Headline:    stripHTML(headline),
			Source:      strings.TrimSpace(item.Source),
			PublishedAt: published,
		})
	}
	return items, nil
}

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

func stripHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}
