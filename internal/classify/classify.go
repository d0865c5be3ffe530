// Package classify maps businesses onto the outreach taxonomy and assigns
// a 1-5 fit rating.
package classify

import (
	"strings"

	"github.com/jfb-hart/lead-command/internal/model"
)

// Business type labels.
const (
	TypeEpoxy           = "Epoxy Flooring Contractor"
	TypeConcreteCoating = "Concrete Coatings Contractor"
	TypeGarageFloor     = "Garage Floor Coating Company"
	TypeResinous        = "Resinous Flooring Contractor"
	TypeCommercialFloor = "Commercial Floor Coating Specialist"
	TypeIndustrialPaint = "Industrial Painting Contractor"
	TypeFacilityMaint   = "Facility Maintenance Contractor"
	TypePolishing       = "Concrete Polishing Contractor"
	TypePropertyMaint   = "Commercial Property Maintenance"
	TypeOther           = "Other"
)

// TypeRule binds a business type label to the keywords that select it.
// Rules are evaluated in order; the first match wins.
type TypeRule struct {
	Type     string
	Keywords []string
}

// DefaultTypeRules is the production classification table.
var DefaultTypeRules = []TypeRule{
	{TypeEpoxy, []string{"epoxy", "epoxies"}},
	{TypeConcreteCoating, []string{"concrete coating", "concrete coatings"}},
	{TypeGarageFloor, []string{"garage", "garage floor"}},
	{TypeResinous, []string{"resinous", "resin"}},
	{TypeCommercialFloor, []string{"commercial floor", "floor coating"}},
	{TypeIndustrialPaint, []string{"industrial paint", "industrial coating"}},
	{TypeFacilityMaint, []string{"facility", "maintenance"}},
	{TypePolishing, []string{"polish", "polishing"}},
	{TypePropertyMaint, []string{"property", "commercial maintenance"}},
}

// RatingRule assigns a fixed rating when any of its keywords match.
type RatingRule struct {
	Rating   int
	Keywords []string
}

// DefaultRatingRules is the production scoring table, highest-precedence
// first. Red flags outrank everything else.
var DefaultRatingRules = []RatingRule{
	{1, []string{"road", "traffic", "pavement", "striping", "asphalt", "dot", "highway", "line striping"}},
	{5, []string{"epoxy", "resinous", "resin", "industrial floor", "concrete coating"}},
	{4, []string{"floor coating", "industrial painting", "commercial floor"}},
	{3, []string{"facility", "maintenance", "polishing", "concrete"}},
}

// Classifier evaluates the type and rating rule tables.
type Classifier struct {
	typeRules   []TypeRule
	ratingRules []RatingRule
}

// NewClassifier creates a Classifier. Nil tables fall back to the defaults.
func NewClassifier(typeRules []TypeRule, ratingRules []RatingRule) *Classifier {
	if len(typeRules) == 0 {
		typeRules = DefaultTypeRules
	}
	if len(ratingRules) == 0 {
		ratingRules = DefaultRatingRules
	}
	return &Classifier{typeRules: typeRules, ratingRules: ratingRules}
}

// DetectBusinessType classifies a business from its name and category tags.
func (c *Classifier) DetectBusinessType(name string, types []string) string {
	text := strings.ToLower(name + " " + strings.Join(types, " "))

	for _, rule := range c.typeRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Type
			}
		}
	}

	// Fallback patterns for businesses the table misses.
	switch {
	case strings.Contains(text, "coating"):
		return TypeConcreteCoating
	case strings.Contains(text, "flooring"), strings.Contains(text, "floor"):
		return TypeCommercialFloor
	case strings.Contains(text, "paint"):
		return TypeIndustrialPaint
	}

	return TypeOther
}

// CalculateRating scores a business 1-5. The first rule that matches
// short-circuits; with no keyword match the review count decides.
func (c *Classifier) CalculateRating(name string, types []string, reviewCount int) int {
	text := strings.ToLower(name + " " + strings.Join(types, " "))

	for _, rule := range c.ratingRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Rating
			}
		}
	}

	switch {
	case reviewCount > 50:
		return 3
	case reviewCount > 10:
		return 2
	}
	return 2
}

// PriorityTier derives the outreach tier from a fit rating.
func PriorityTier(rating int) model.PriorityTier {
	switch {
	case rating >= 4:
		return model.TierOne
	case rating == 3:
		return model.TierTwo
	}
	return model.TierThree
}
