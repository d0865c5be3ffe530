// Package scrape extracts contact emails and owner names from business
// websites as a best-effort fallback when API lookup finds nothing.
package scrape

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jfb-hart/lead-command/internal/config"
)

const userAgent = "Mozilla/5.0 (compatible; JFBLeadFinder/1.0)"

// DefaultContactPaths are probed in order when the homepage has no emails.
var DefaultContactPaths = []string{
	"/contact", "/contact-us", "/about", "/about-us", "/team", "/our-team",
}

// DefaultEmailExclusions filters placeholder addresses, image references
// and third-party platform domains out of the candidate set.
var DefaultEmailExclusions = []string{
	"example.com", "domain.com", "email.com",
	"sentry.io", "wixpress.com", "wordpress",
	".png", ".jpg", ".gif",
}

// DefaultPriorityPrefixes rank candidate emails by local-part prefix.
var DefaultPriorityPrefixes = []string{"owner", "info", "contact", "hello", "admin", "sales"}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// ownerPatterns look for a capitalized two-word name adjacent to a title
// keyword. First matching pattern wins.
var ownerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:owner|founder|ceo|president|proprietor)[:\s]+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)[,\s]+(?:owner|founder|ceo|president|proprietor)`),
	regexp.MustCompile(`(?i)<(?:h[1-6]|p|span)[^>]*>([A-Z][a-z]+\s+[A-Z][a-z]+)[,\s]*-?\s*(?:owner|founder|ceo|president)`),
}

// Result holds the contact info scraped from one website.
type Result struct {
	Found     bool     `json:"found"`
	Email     string   `json:"email,omitempty"`
	AllEmails []string `json:"allEmails,omitempty"`
	OwnerName string   `json:"ownerName,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Scraper fetches business websites and extracts contact details.
type Scraper struct {
	http         *http.Client
	contactPaths []string
	exclusions   []string
	delay        time.Duration
	batchSize    int
}

// NewScraper creates a Scraper from config. Zero values fall back to
// package defaults.
func NewScraper(cfg config.ScrapeConfig) *Scraper {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Scraper{
		http:         &http.Client{Timeout: timeout},
		contactPaths: DefaultContactPaths,
		exclusions:   DefaultEmailExclusions,
		delay:        time.Duration(cfg.DelayMillis) * time.Millisecond,
		batchSize:    batchSize,
	}
}

// WithHTTPClient overrides the HTTP client (for tests).
func (s *Scraper) WithHTTPClient(hc *http.Client) *Scraper {
	s.http = hc
	return s
}

// ScrapeWebsite fetches a site's homepage and, when no emails turn up,
// probes the common contact-page paths. Owner-name extraction continues
// on every fetched page until one is found.
func (s *Scraper) ScrapeWebsite(ctx context.Context, website string) Result {
	baseURL := website
	if !strings.HasPrefix(website, "http") {
		baseURL = "https://" + website
	}

	html, ok := s.fetchPage(ctx, baseURL)
	if !ok {
		return Result{Error: "could not fetch page"}
	}

	emails := s.extractEmails(html)
	ownerName := extractOwnerName(html)

	if len(emails) == 0 {
		base, err := url.Parse(baseURL)
		if err == nil {
			for _, pagePath := range s.contactPaths {
				ref, err := url.Parse(pagePath)
				if err != nil {
					continue
				}
				pageHTML, ok := s.fetchPage(ctx, base.ResolveReference(ref).String())
				if !ok {
					continue
				}
				emails = append(emails, s.extractEmails(pageHTML)...)
				if ownerName == "" {
					ownerName = extractOwnerName(pageHTML)
				}
				if len(emails) > 0 {
					break
				}
			}
		}
	}

	unique := dedupe(emails)
	best := PrioritizeEmail(unique)

	if len(unique) > 5 {
		unique = unique[:5]
	}

	return Result{
		Found:     best != "",
		Email:     best,
		AllEmails: unique,
		OwnerName: ownerName,
	}
}

// ScrapeBatch processes websites sequentially with a politeness delay,
// chunked to the configured batch size. Failures on one site never abort
// the rest.
func (s *Scraper) ScrapeBatch(ctx context.Context, websites []string) map[string]Result {
	if len(websites) > s.batchSize {
		websites = websites[:s.batchSize]
	}

	results := make(map[string]Result, len(websites))
	for i, website := range websites {
		if ctx.Err() != nil {
			break
		}
		if i > 0 && s.delay > 0 {
			time.Sleep(s.delay)
		}

		result := s.ScrapeWebsite(ctx, website)
		results[website] = result
		if result.Error != "" {
			zap.L().Debug("scrape failed", zap.String("website", website), zap.String("error", result.Error))
		}
	}
	return results
}

// fetchPage returns the page body, or false on any network error,
// non-2xx status or non-HTML content type.
func (s *Scraper) fetchPage(ctx context.Context, pageURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}
	return string(body), true
}

// extractEmails pulls candidate addresses from HTML, dropping any that
// match the exclusion list.
func (s *Scraper) extractEmails(html string) []string {
	matches := emailPattern.FindAllString(html, -1)

	var filtered []string
	for _, email := range matches {
		lower := strings.ToLower(email)
		excluded := false
		for _, frag := range s.exclusions {
			if strings.Contains(lower, frag) {
				excluded = true
				break
			}
		}
		if !excluded {
			filtered = append(filtered, email)
		}
	}
	return filtered
}

// extractOwnerName applies the heuristic name patterns in order.
func extractOwnerName(html string) string {
	for _, pattern := range ownerPatterns {
		if m := pattern.FindStringSubmatch(html); len(m) > 1 && m[1] != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// PrioritizeEmail picks the best candidate by local-part prefix, falling
// back to the first candidate when none match the priority list.
func PrioritizeEmail(emails []string) string {
	if len(emails) == 0 {
		return ""
	}
	if len(emails) == 1 {
		return emails[0]
	}

	for _, prefix := range DefaultPriorityPrefixes {
		for _, email := range emails {
			if strings.HasPrefix(strings.ToLower(email), prefix) {
				return email
			}
		}
	}
	return emails[0]
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	var out []string
	for _, e := range emails {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
