package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/jfb-hart/lead-command/internal/chain"
	"github.com/jfb-hart/lead-command/internal/classify"
	"github.com/jfb-hart/lead-command/internal/enrich"
	"github.com/jfb-hart/lead-command/internal/scrape"
	"github.com/jfb-hart/lead-command/internal/search"
	"github.com/jfb-hart/lead-command/internal/store"
	"github.com/jfb-hart/lead-command/pkg/hunter"
	"github.com/jfb-hart/lead-command/pkg/openwebninja"
)

func buildAggregator() *search.Aggregator {
	client := openwebninja.NewClient(cfg.OpenWebNinja.Key, openwebninja.WithBaseURL(cfg.OpenWebNinja.BaseURL))
	return search.NewAggregator(client, chain.NewDetector(nil, nil), classify.NewClassifier(nil, nil), cfg.Search)
}

func buildScraper() *scrape.Scraper {
	return scrape.NewScraper(cfg.Scrape)
}

func buildEnricher(withScraper bool) *enrich.Enricher {
	client := hunter.NewClient(cfg.Hunter.Key, hunter.WithBaseURL(cfg.Hunter.BaseURL))
	var scraper *scrape.Scraper
	if withScraper {
		scraper = buildScraper()
	}
	return enrich.NewEnricher(client, scraper, cfg.Enrich)
}

func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}
