// Package chain flags franchise and multi-location businesses so they can
// be excluded from outreach targeting.
package chain

import "strings"

// DefaultBlocklist lists name fragments of known franchise brands.
var DefaultBlocklist = []string{
	"garage kings", "garageexperts", "garage experts", "garage force",
	"concrete craft", "guardian", "floor coverings international",
	"n-hance", "chem-dry", "certapro", "college hunks",
	"servpro", "stanley steemer", "1-800", "the grounds guys",
	"home depot", "lowes", "sherwin williams", "ppg", "benjamin moore",
	"flooring america", "carpet one", "empire today", "lumber liquidators",
	"floor & decor", "tile shop", "menards", "ace hardware",
	"precision garage door", "overhead door", "clopay",
	"mach 1 epoxy", "mach one epoxy", "hello garage", "tailored living",
}

// DefaultKeywords lists generic phrases that indicate a multi-location brand.
var DefaultKeywords = []string{
	"franchise", "franchising", "locations nationwide", "national brand",
	"serving multiple", "multiple locations", "locations across",
}

// Result is the outcome of a chain check. Reason echoes the matched
// fragment for auditability and is empty when IsChain is false.
type Result struct {
	IsChain bool   `json:"isChain"`
	Reason  string `json:"reason,omitempty"`
}

// Detector tests business names against a blocklist and a keyword list.
type Detector struct {
	blocklist []string
	keywords  []string
}

// NewDetector creates a Detector with the given tables. Empty slices fall
// back to the package defaults.
func NewDetector(blocklist, keywords []string) *Detector {
	if len(blocklist) == 0 {
		blocklist = DefaultBlocklist
	}
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	return &Detector{blocklist: blocklist, keywords: keywords}
}

// Detect checks a business name and its category tags. The blocklist is
// evaluated before the keyword list; the first match supplies the reason.
func (d *Detector) Detect(name string, types []string) Result {
	text := strings.ToLower(name + " " + strings.Join(types, " "))

	for _, fragment := range d.blocklist {
		if strings.Contains(text, fragment) {
			return Result{IsChain: true, Reason: "Matches known chain: " + fragment}
		}
	}

	for _, keyword := range d.keywords {
		if strings.Contains(text, keyword) {
			return Result{IsChain: true, Reason: "Contains chain keyword: " + keyword}
		}
	}

	return Result{}
}
