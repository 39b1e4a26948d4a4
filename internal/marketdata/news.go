package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

const maxNewsItems = 10

// News scrapes recent headlines for a symbol from the provider's quote page.
// Results are cached under "news_<symbol>" in the shared fetch cache.
func (c *Client) News(ctx context.Context, symbol string) ([]NewsItem, error) {
	cacheKey := fmt.Sprintf("news_%s", symbol)
	if cached, ok := c.cache.Get(cacheKey); ok {
		if items, ok := cached.([]NewsItem); ok {
			return items, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}

	fullURL := fmt.Sprintf("%s/%s/news", c.cfg.NewsBaseURL, url.PathEscape(symbol))

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("news fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("news parse failed: %w", err)
	}

	items := parseNewsDocument(doc)
	c.cache.Set(cacheKey, items)
	return items, nil
}

// parseNewsDocument extracts headline items from a quote news page
func parseNewsDocument(doc *goquery.Document) []NewsItem {
	items := make([]NewsItem, 0, maxNewsItems)

	doc.Find("li.stream-item, li.js-stream-content").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := sel.Find("h3").First().Text()
		if title == "" {
			return true
		}

		link, _ := sel.Find("a").First().Attr("href")
		publisher := sel.Find("div.publishing").First().Text()
		if publisher == "" {
			publisher = sel.Find("span").First().Text()
		}

		items = append(items, NewsItem{
			Title:     title,
			Publisher: publisher,
			Link:      link,
		})

		return len(items) < maxNewsItems
	})

	return items
}
