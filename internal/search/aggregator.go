// Package search aggregates local-business search results into scored,
// deduplicated leads.
package search

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jfb-hart/lead-command/internal/chain"
	"github.com/jfb-hart/lead-command/internal/classify"
	"github.com/jfb-hart/lead-command/internal/config"
	"github.com/jfb-hart/lead-command/internal/model"
	"github.com/jfb-hart/lead-command/pkg/openwebninja"
)

// DefaultQueries are the fixed search phrases, ordered tier 1 through 3.
var DefaultQueries = []string{
	// Tier 1 - Primary targets
	"commercial epoxy flooring contractor",
	"resinous flooring contractor",
	"industrial floor coatings contractor",
	"concrete coatings contractor",
	// Tier 2 - Strong adjacent
	"commercial flooring contractor",
	"industrial painting contractor",
	"facility maintenance contractor",
	// Tier 3 - Opportunistic
	"concrete polishing contractor",
	"commercial property maintenance",
}

// Options configures a single search run.
type Options struct {
	FilterChains bool
}

// Aggregator runs the fixed query list against the search API and merges
// the results into one deduplicated lead list.
type Aggregator struct {
	client     openwebninja.Client
	detector   *chain.Detector
	classifier *classify.Classifier
	queries    []string
	limiter    *rate.Limiter
	cfg        config.SearchConfig
}

// NewAggregator creates an Aggregator with the given dependencies.
func NewAggregator(client openwebninja.Client, detector *chain.Detector, classifier *classify.Classifier, cfg config.SearchConfig) *Aggregator {
	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = 5
	}
	return &Aggregator{
		client:     client,
		detector:   detector,
		classifier: classifier,
		queries:    DefaultQueries,
		limiter:    rate.NewLimiter(rate.Limit(rateLimit), 1),
		cfg:        cfg,
	}
}

// WithQueries overrides the query list (for tests).
func (a *Aggregator) WithQueries(queries []string) *Aggregator {
	a.queries = queries
	return a
}

// Search issues one query per phrase for the given city and merges the
// results. A failing phrase is logged and skipped; there is no global
// result cap beyond the per-phrase page size.
func (a *Aggregator) Search(ctx context.Context, city string, opts Options) ([]model.Lead, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, eris.New("search: city is required")
	}

	log := zap.L().With(zap.String("city", city))

	pageSize := a.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	var leads []model.Lead
	seen := make(map[string]struct{})

	for _, queryBase := range a.queries {
		if err := a.limiter.Wait(ctx); err != nil {
			return leads, eris.Wrap(err, "search: rate limit wait")
		}

		resp, err := a.client.Search(ctx, openwebninja.SearchRequest{
			Query:    queryBase + " " + city,
			Limit:    pageSize,
			Language: a.cfg.Language,
			Region:   a.cfg.Region,
		})
		if err != nil {
			log.Warn("phrase search failed", zap.String("query", queryBase), zap.Error(err))
			continue
		}

		for _, biz := range resp.Data {
			if _, ok := seen[biz.BusinessID]; ok {
				continue
			}
			seen[biz.BusinessID] = struct{}{}

			lead := a.buildLead(biz, city)
			if opts.FilterChains && lead.IsChain {
				continue
			}

			leads = append(leads, lead)
		}
	}

	log.Info("search complete", zap.Int("leads", len(leads)))
	return leads, nil
}

// buildLead converts a raw API record into a classified, scored Lead.
func (a *Aggregator) buildLead(biz openwebninja.Business, city string) model.Lead {
	lead := model.Lead{
		ID:          biz.BusinessID,
		Name:        biz.Name,
		Website:     biz.Website,
		Phone:       biz.PhoneNumber,
		Address:     biz.FullAddress,
		City:        city,
		Lat:         biz.Latitude,
		Lng:         biz.Longitude,
		Rating:      biz.Rating,
		ReviewCount: biz.ReviewCount,
		Types:       biz.Types,
		LinkedInURL: model.LinkedInSearchURL(biz.Name),
	}

	check := a.detector.Detect(biz.Name, biz.Types)
	lead.IsChain = check.IsChain
	lead.ChainReason = check.Reason

	lead.BusinessType = a.classifier.DetectBusinessType(biz.Name, biz.Types)
	lead.FitRating = a.classifier.CalculateRating(biz.Name, biz.Types, biz.ReviewCount)
	lead.PriorityTier = classify.PriorityTier(lead.FitRating)

	return lead
}
