// Package message renders the outreach letter for a lead.
package message

import (
	"fmt"

	"github.com/jfb-hart/lead-command/internal/classify"
	"github.com/jfb-hart/lead-command/internal/model"
)

// DefaultTailoredLines keys a business-type-specific sentence into the
// letter body.
var DefaultTailoredLines = map[string]string{
	classify.TypeEpoxy:           "Given your expertise in epoxy applications, Supreme Xtreme could serve as a strong complementary option for projects requiring a water-based, low-VOC alternative that still delivers industrial-grade performance.",
	classify.TypeConcreteCoating: "With your focus on concrete coatings, Supreme Xtreme could complement your current lineup as a high-durability, water-based system ideal for occupied commercial spaces.",
	classify.TypeGarageFloor:     "As you already work with coating systems, Supreme Xtreme could be a valuable addition for commercial or institutional projects where low odor and fast return-to-service are priorities.",
	classify.TypeResinous:        "Your background in resinous systems aligns well with what Supreme Xtreme offers — a water-based coating that delivers the chemical resistance and durability your clients expect.",
	classify.TypeCommercialFloor: "With your focus on commercial environments, Supreme Xtreme could be a natural fit — designed specifically for high-traffic institutional spaces that demand durability with minimal downtime.",
	classify.TypeIndustrialPaint: "Since your team already handles industrial coatings, Supreme Xtreme could expand your floor coating capabilities with a water-based system built for commercial and institutional use.",
	classify.TypeFacilityMaint:   "For the facilities you maintain, Supreme Xtreme eliminates the constant strip-and-wax cycle, reducing labor costs and downtime — which is exactly what your clients need.",
	classify.TypePolishing:       "When your clients ask about coating options for their prepped slabs, Supreme Xtreme gives you a high-performance, water-based answer that complements your polishing work.",
	classify.TypePropertyMaint:   "Supreme Xtreme could help the properties you manage reduce their long-term floor maintenance costs while keeping spaces safe and operational.",
	classify.TypeOther:           "Supreme Xtreme could be a strong complementary product for your business — offering industrial-grade floor protection in a practical, water-based system.",
}

const letterTemplate = `Hi,

My name is Aidan Thompson, and I represent JFB Hart Coatings — a family-run company out of Chicago specializing in high-performance coating systems. I am currently based in Western Kentucky and actively building relationships with contractors and businesses nationwide.

I wanted to reach out because I see potential alignment between what %s does and our Supreme Xtreme product line. Supreme Xtreme is a water-based floor coating that is durable, chemical resistant, flexible, low-VOC, and solvent-free — all while reducing long-term maintenance for commercial and institutional facilities. These products have been used on Disney World roller coasters, hospital floors, stadium bathrooms and walkways, studio floors of FOX and MSNBC, and many more.

%s

This is not about replacing anything in your current process — I see Supreme Xtreme as a complementary product that could open new opportunities or strengthen what you already offer.

I would be happy to provide more information if you are interested. Below is some more information about JFB Hart Coatings and myself.

Aidan Thompson
JFB Hart Coatings
aidan.thompsonjfb@outlook.com
630 392 4977
https://jfbsupremextreme.com/
www.linkedin.com/in/aidan-thompson-83873431b`

// Message is a rendered outreach letter for one lead.
type Message struct {
	LeadNumber   int    `json:"leadNumber"`
	CompanyName  string `json:"companyName"`
	BusinessType string `json:"businessType"`
	Rating       int    `json:"rating"`
	Body         string `json:"message"`
}

// Generator renders outreach letters from the tailored-line table.
type Generator struct {
	tailoredLines map[string]string
}

// NewGenerator creates a Generator. A nil table falls back to the default.
func NewGenerator(tailoredLines map[string]string) *Generator {
	if tailoredLines == nil {
		tailoredLines = DefaultTailoredLines
	}
	return &Generator{tailoredLines: tailoredLines}
}

// Generate renders the letter for one lead. Pure and deterministic.
func (g *Generator) Generate(lead model.Lead) string {
	line, ok := g.tailoredLines[lead.BusinessType]
	if !ok {
		line = g.tailoredLines[classify.TypeOther]
	}
	return fmt.Sprintf(letterTemplate, lead.Name, line)
}

// GenerateAll renders a numbered message per lead, in input order.
func (g *Generator) GenerateAll(leads []model.Lead) []Message {
	messages := make([]Message, 0, len(leads))
	for i, lead := range leads {
		messages = append(messages, Message{
			LeadNumber:   i + 1,
			CompanyName:  lead.Name,
			BusinessType: lead.BusinessType,
			Rating:       lead.FitRating,
			Body:         g.Generate(lead),
		})
	}
	return messages
}
