// Package maps scrapes business contact cards from Google Maps search
// results, producing the raw batch the cleaner consumes.
package maps

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"estate-builder/config"
	"estate-builder/models"
	"estate-builder/utils"
)

const platform = "google-maps"

// Scraper orchestrates the Maps scraping process.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	visited *utils.SeenSet
	retry   *utils.RetryConfig

	mu       sync.Mutex
	contacts []models.RawContact
}

// New creates a ready-to-use Maps Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visited: utils.NewSeenSet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		contacts: make([]models.RawContact, 0),
	}
}

// Scrape runs a search for the given query (e.g. "emlak ofisi istanbul")
// and returns the raw contact cards it finds, detail pages included.
func (s *Scraper) Scrape(query string) ([]models.RawContact, error) {
	s.logger.Info("[maps] Starting scrape — query: %q, max results: %d", query, s.cfg.MaxResults)

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[maps] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()
	allocCtx = silentCtx

	cards, err := s.scrapeSearch(allocCtx, query)
	if err != nil {
		return nil, fmt.Errorf("maps: search scrape: %w", err)
	}
	s.logger.Info("[maps] Search returned %d cards — visiting detail pages...", len(cards))

	for _, card := range cards {
		card := card
		detailURL, _ := card["detail_url"].(string)
		if detailURL == "" || !s.visited.Add(detailURL) {
			s.append(card)
			continue
		}
		s.pool.Submit(func() {
			s.enrichCard(allocCtx, card, detailURL)
			s.append(card)
		})
	}
	s.pool.Wait()

	s.logger.Info("[maps] Scrape complete — total raw contacts: %d", len(s.contacts))
	return s.contacts, nil
}

func (s *Scraper) append(card models.RawContact) {
	s.mu.Lock()
	s.contacts = append(s.contacts, card)
	s.mu.Unlock()
}

// scrapeSearch loads the search results list and extracts one raw card per
// business.
func (s *Scraper) scrapeSearch(allocCtx context.Context, query string) ([]models.RawContact, error) {
	searchURL := "https://www.google.com/maps/search/" + url.PathEscape(query)

	var cards []models.RawContact
	err := s.retry.Do("maps-search", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		var extracted []map[string]any
		err := chromedp.Run(ctx,
			chromedp.Navigate(searchURL),
			chromedp.Sleep(5*time.Second),

			// Scroll the results feed to force lazy cards to load
			chromedp.Evaluate(`
				(function() {
					var feed = document.querySelector('[role="feed"]');
					if (feed) { feed.scrollTo(0, feed.scrollHeight); }
				})()
			`, nil),
			chromedp.Sleep(3*time.Second),

			chromedp.Evaluate(fmt.Sprintf(`
				(function() {
					var results = [];
					var limit = %d;
					var links = document.querySelectorAll('a[href*="/maps/place/"]');
					for (var i = 0; i < links.length && results.length < limit; i++) {
						var card = links[i].closest('div[jsaction]') || links[i].parentElement;
						if (!card) continue;
						var name = links[i].getAttribute('aria-label') || '';
						if (!name) continue;
						var text = card.textContent || '';
						var phoneMatch = text.match(/(\+?[\d][\d\s().-]{8,})/);
						var ratingMatch = text.match(/([0-5][.,]\d)/);
						var reviewsMatch = text.match(/\((\d[\d.,]*)\)/);
						results.push({
							name: name,
							phone: phoneMatch ? phoneMatch[1] : '',
							rating: ratingMatch ? ratingMatch[1] : '',
							reviews: reviewsMatch ? reviewsMatch[1] : '',
							detail_url: links[i].href
						});
					}
					return results;
				})()
			`, s.cfg.MaxResults), &extracted),
		)
		if err != nil {
			return fmt.Errorf("chromedp evaluate: %w", err)
		}

		cards = cards[:0]
		for _, e := range extracted {
			card := models.RawContact(e)
			card["platform"] = platform
			card["scraped_at"] = time.Now().Format(time.RFC3339)
			cards = append(cards, card)
		}
		return nil
	})

	return cards, err
}

// enrichCard opens a business detail page and fills in the fields the list
// view does not expose (address, website, category, a cleaner phone).
func (s *Scraper) enrichCard(allocCtx context.Context, card models.RawContact, detailURL string) {
	err := s.retry.Do("maps-detail", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		var detail map[string]any
		err := chromedp.Run(ctx,
			chromedp.Navigate(detailURL),
			chromedp.Sleep(4*time.Second),

			chromedp.Evaluate(`
				(function() {
					function text(sel) {
						var el = document.querySelector(sel);
						return el ? (el.textContent || '').trim() : '';
					}
					var phoneBtn = document.querySelector('button[data-item-id^="phone"]');
					var websiteLink = document.querySelector('a[data-item-id="authority"]');
					return {
						address: text('button[data-item-id="address"]'),
						phone: phoneBtn ? (phoneBtn.getAttribute('data-item-id') || '').replace('phone:tel:', '') : '',
						website: websiteLink ? websiteLink.href : '',
						category: text('button[jsaction*="category"]')
					};
				})()
			`, &detail),
		)
		if err != nil {
			return fmt.Errorf("chromedp evaluate: %w", err)
		}

		for k, v := range detail {
			str, _ := v.(string)
			if str == "" {
				continue
			}
			// Detail data beats the list-view guess
			card[k] = str
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("[maps] Detail page failed for %v: %v", card["name"], err)
	}
}

// findChromeBinary picks the browser binary: an explicit override first,
// then the usual suspects on PATH.
func findChromeBinary(override string) string {
	if override != "" {
		return override
	}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "chrome"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
