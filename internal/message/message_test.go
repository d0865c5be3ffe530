package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfb-hart/lead-command/internal/classify"
	"github.com/jfb-hart/lead-command/internal/model"
)

func TestGenerate_TailoredLine(t *testing.T) {
	g := NewGenerator(nil)

	lead := model.Lead{Name: "Nashville Epoxy Pros", BusinessType: classify.TypeEpoxy}
	body := g.Generate(lead)

	assert.Contains(t, body, "what Nashville Epoxy Pros does")
	assert.Contains(t, body, DefaultTailoredLines[classify.TypeEpoxy])
}

func TestGenerate_OtherFallback(t *testing.T) {
	g := NewGenerator(nil)

	lead := model.Lead{Name: "Mystery Co", BusinessType: "Unknown Category"}
	body := g.Generate(lead)

	assert.Contains(t, body, DefaultTailoredLines[classify.TypeOther])
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewGenerator(nil)
	lead := model.Lead{Name: "Acme Floors", BusinessType: classify.TypeResinous}

	first := g.Generate(lead)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, g.Generate(lead))
	}
}

func TestGenerateAll(t *testing.T) {
	g := NewGenerator(nil)

	leads := []model.Lead{
		{Name: "First Co", BusinessType: classify.TypeEpoxy, FitRating: 5},
		{Name: "Second Co", BusinessType: classify.TypeFacilityMaint, FitRating: 3},
	}

	messages := g.GenerateAll(leads)
	require.Len(t, messages, 2)

	assert.Equal(t, 1, messages[0].LeadNumber)
	assert.Equal(t, "First Co", messages[0].CompanyName)
	assert.Equal(t, 5, messages[0].Rating)
	assert.Contains(t, messages[0].Body, "First Co")

	assert.Equal(t, 2, messages[1].LeadNumber)
	assert.Contains(t, messages[1].Body, DefaultTailoredLines[classify.TypeFacilityMaint])
}

func TestGenerate_CustomTable(t *testing.T) {
	g := NewGenerator(map[string]string{
		classify.TypeOther: "Custom pitch line.",
	})

	body := g.Generate(model.Lead{Name: "X", BusinessType: classify.TypeOther})
	assert.Contains(t, body, "Custom pitch line.")
}
