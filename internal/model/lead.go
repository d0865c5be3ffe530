// Package model defines the core lead record shared across the pipeline.
package model

import (
	"net/url"
	"time"
)

// PriorityTier buckets leads for outreach sequencing.
type PriorityTier string

const (
	TierOne   PriorityTier = "Tier 1"
	TierTwo   PriorityTier = "Tier 2"
	TierThree PriorityTier = "Tier 3"
)

// Lead represents a prospective business contact produced by a search run.
type Lead struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Website     string   `json:"website,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city"`
	Lat         float64  `json:"lat,omitempty"`
	Lng         float64  `json:"lng,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	ReviewCount int      `json:"reviewCount"`
	Types       []string `json:"types,omitempty"`
	LinkedInURL string   `json:"linkedInUrl,omitempty"`

	// Derived by the classifier.
	BusinessType string       `json:"businessType,omitempty"`
	FitRating    int          `json:"fitRating,omitempty"`
	PriorityTier PriorityTier `json:"priorityTier,omitempty"`

	// Derived by the chain detector.
	IsChain     bool   `json:"isChain"`
	ChainReason string `json:"chainReason,omitempty"`

	// Populated by enrichment.
	ContactName   string   `json:"contactName,omitempty"`
	OwnerName     string   `json:"ownerName,omitempty"`
	ScrapedEmails []string `json:"scrapedEmails,omitempty"`
}

// SavedSearch is a persisted search result set.
type SavedSearch struct {
	ID        string    `json:"id"`
	City      string    `json:"city"`
	Leads     []Lead    `json:"leads"`
	LeadCount int       `json:"leadCount"`
	SavedAt   time.Time `json:"savedAt"`
}

// LinkedInSearchURL builds a LinkedIn people-search URL targeting the
// company's owner.
func LinkedInSearchURL(companyName string) string {
	q := url.QueryEscape(companyName + " owner")
	return "https://www.linkedin.com/search/results/people/?keywords=" + q
}
