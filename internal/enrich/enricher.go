// Package enrich attaches contact emails to leads, first via Hunter.io
// domain search, then via contact-page scraping for the remainder.
package enrich

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jfb-hart/lead-command/internal/config"
	"github.com/jfb-hart/lead-command/internal/model"
	"github.com/jfb-hart/lead-command/internal/scrape"
	"github.com/jfb-hart/lead-command/pkg/hunter"
)

// EmailHit is the best email found for one domain.
type EmailHit struct {
	Email      string `json:"email,omitempty"`
	Confidence int    `json:"confidence,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Found      bool   `json:"found"`
}

// Enricher runs the two enrichment strategies over a lead list.
type Enricher struct {
	hunter    hunter.Client
	scraper   *scrape.Scraper
	delay     time.Duration
	batchSize int
}

// NewEnricher creates an Enricher. The scraper may be nil when only the
// domain lookup pass is wanted.
func NewEnricher(h hunter.Client, s *scrape.Scraper, cfg config.EnrichConfig) *Enricher {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	return &Enricher{
		hunter:    h,
		scraper:   s,
		delay:     time.Duration(cfg.DelayMillis) * time.Millisecond,
		batchSize: batchSize,
	}
}

// Domain derives a lowercase registrable domain from a website URL.
// Returns "" when the URL cannot be parsed.
func Domain(website string) string {
	if website == "" {
		return ""
	}
	raw := website
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// LookupDomains queries Hunter for each unique domain, capped to the
// batch size, pausing between calls. Failed or empty domains yield
// Found=false and are left for scraping.
func (e *Enricher) LookupDomains(ctx context.Context, domains []string) map[string]EmailHit {
	unique := dedupe(domains)
	if len(unique) > e.batchSize {
		unique = unique[:e.batchSize]
	}

	results := make(map[string]EmailHit, len(unique))
	for i, domain := range unique {
		if ctx.Err() != nil {
			break
		}
		if i > 0 && e.delay > 0 {
			time.Sleep(e.delay)
		}

		resp, err := e.hunter.DomainSearch(ctx, domain)
		if err != nil {
			zap.L().Warn("domain search failed", zap.String("domain", domain), zap.Error(err))
			results[domain] = EmailHit{}
			continue
		}

		best := bestEmail(resp.Data.Emails)
		if best == nil {
			results[domain] = EmailHit{}
			continue
		}

		results[domain] = EmailHit{
			Email:      best.Value,
			Confidence: best.Confidence,
			FirstName:  best.FirstName,
			LastName:   best.LastName,
			Found:      true,
		}
	}
	return results
}

// EnrichEmails runs the domain lookup over all leads lacking an email and
// merges the hits back in. Existing emails are never overwritten.
func (e *Enricher) EnrichEmails(ctx context.Context, leads []model.Lead) []model.Lead {
	var domains []string
	for _, lead := range leads {
		if lead.Email != "" || lead.Website == "" {
			continue
		}
		if d := Domain(lead.Website); d != "" {
			domains = append(domains, d)
		}
	}
	if len(domains) == 0 {
		return leads
	}

	hits := e.LookupDomains(ctx, domains)

	for i := range leads {
		if leads[i].Email != "" {
			continue
		}
		hit, ok := hits[Domain(leads[i].Website)]
		if !ok || !hit.Found {
			continue
		}
		leads[i].Email = hit.Email
		if hit.FirstName != "" && hit.LastName != "" {
			leads[i].ContactName = hit.FirstName + " " + hit.LastName
		}
	}
	return leads
}

// ScrapeContacts runs the scraping fallback for leads still lacking an
// email after the domain lookup pass.
func (e *Enricher) ScrapeContacts(ctx context.Context, leads []model.Lead) []model.Lead {
	if e.scraper == nil {
		return leads
	}

	var websites []string
	for _, lead := range leads {
		if lead.Email == "" && lead.Website != "" {
			websites = append(websites, lead.Website)
		}
	}
	if len(websites) == 0 {
		return leads
	}

	results := make(map[string]scrape.Result, len(websites))
	for start := 0; start < len(websites); start += e.batchSize {
		end := min(start+e.batchSize, len(websites))
		for site, r := range e.scraper.ScrapeBatch(ctx, websites[start:end]) {
			results[site] = r
		}
	}

	for i := range leads {
		scraped, ok := results[leads[i].Website]
		if !ok || !scraped.Found {
			continue
		}
		if leads[i].Email == "" {
			leads[i].Email = scraped.Email
		}
		if leads[i].OwnerName == "" {
			leads[i].OwnerName = scraped.OwnerName
		}
		leads[i].ScrapedEmails = scraped.AllEmails
	}
	return leads
}

// bestEmail picks the highest-confidence candidate, first-encountered on
// ties.
func bestEmail(emails []hunter.Email) *hunter.Email {
	var best *hunter.Email
	for i := range emails {
		if best == nil || emails[i].Confidence > best.Confidence {
			best = &emails[i]
		}
	}
	return best
}

func dedupe(domains []string) []string {
	seen := make(map[string]struct{}, len(domains))
	var out []string
	for _, d := range domains {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
