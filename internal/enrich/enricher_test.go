package enrich

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfb-hart/lead-command/internal/config"
	"github.com/jfb-hart/lead-command/internal/model"
	"github.com/jfb-hart/lead-command/pkg/hunter"
)

type mockHunter struct {
	responses map[string]*hunter.DomainSearchResponse
	err       error
	calls     []string
}

func (m *mockHunter) DomainSearch(_ context.Context, domain string) (*hunter.DomainSearchResponse, error) {
	m.calls = append(m.calls, domain)
	if m.err != nil {
		return nil, m.err
	}
	if resp, ok := m.responses[domain]; ok {
		return resp, nil
	}
	return &hunter.DomainSearchResponse{}, nil
}

func newTestEnricher(h hunter.Client) *Enricher {
	return NewEnricher(h, nil, config.EnrichConfig{DelayMillis: 0, BatchSize: 10})
}

func TestDomain(t *testing.T) {
	tests := []struct {
		website string
		want    string
	}{
		{"https://www.acmefloors.com/about", "acmefloors.com"},
		{"http://acmefloors.com", "acmefloors.com"},
		{"acmefloors.com", "acmefloors.com"},
		{"WWW.AcmeFloors.COM", "acmefloors.com"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Domain(tt.website), "website %q", tt.website)
	}
}

func TestLookupDomains_PicksHighestConfidence(t *testing.T) {
	h := &mockHunter{
		responses: map[string]*hunter.DomainSearchResponse{
			"acme.com": {Data: hunter.DomainData{Emails: []hunter.Email{
				{Value: "low@acme.com", Confidence: 40},
				{Value: "high@acme.com", Confidence: 95, FirstName: "Jane", LastName: "Doe"},
				{Value: "tie@acme.com", Confidence: 95},
			}}},
		},
	}

	hits := newTestEnricher(h).LookupDomains(context.Background(), []string{"acme.com"})

	require.Contains(t, hits, "acme.com")
	hit := hits["acme.com"]
	assert.True(t, hit.Found)
	// Ties break to the first-encountered candidate.
	assert.Equal(t, "high@acme.com", hit.Email)
	assert.Equal(t, 95, hit.Confidence)
	assert.Equal(t, "Jane", hit.FirstName)
}

func TestLookupDomains_DedupesAndCaps(t *testing.T) {
	h := &mockHunter{responses: map[string]*hunter.DomainSearchResponse{}}
	e := NewEnricher(h, nil, config.EnrichConfig{BatchSize: 3})

	domains := []string{"a.com", "a.com", "b.com", "c.com", "d.com"}
	hits := e.LookupDomains(context.Background(), domains)

	// Deduped to a,b,c,d then capped to 3.
	assert.Len(t, hits, 3)
	assert.Equal(t, []string{"a.com", "b.com", "c.com"}, h.calls)
}

func TestLookupDomains_FailureYieldsNotFound(t *testing.T) {
	h := &mockHunter{err: assert.AnError}

	hits := newTestEnricher(h).LookupDomains(context.Background(), []string{"down.com"})

	require.Contains(t, hits, "down.com")
	assert.False(t, hits["down.com"].Found)
}

func TestEnrichEmails_MergesHits(t *testing.T) {
	h := &mockHunter{
		responses: map[string]*hunter.DomainSearchResponse{
			"acme.com": {Data: hunter.DomainData{Emails: []hunter.Email{
				{Value: "info@acme.com", Confidence: 90, FirstName: "Jane", LastName: "Doe"},
			}}},
		},
	}

	leads := []model.Lead{
		{ID: "1", Name: "Acme Floors", Website: "https://www.acme.com"},
		{ID: "2", Name: "No Website Co"},
	}

	got := newTestEnricher(h).EnrichEmails(context.Background(), leads)

	assert.Equal(t, "info@acme.com", got[0].Email)
	assert.Equal(t, "Jane Doe", got[0].ContactName)
	assert.Empty(t, got[1].Email)
}

func TestEnrichEmails_NeverOverwrites(t *testing.T) {
	h := &mockHunter{
		responses: map[string]*hunter.DomainSearchResponse{
			"acme.com": {Data: hunter.DomainData{Emails: []hunter.Email{
				{Value: "new@acme.com", Confidence: 99},
			}}},
		},
	}

	leads := []model.Lead{
		{ID: "1", Website: "https://acme.com", Email: "existing@acme.com"},
		{ID: "2", Website: "https://acme.com"},
	}

	got := newTestEnricher(h).EnrichEmails(context.Background(), leads)

	assert.Equal(t, "existing@acme.com", got[0].Email)
	// Leads sharing the domain still receive the hit.
	assert.Equal(t, "new@acme.com", got[1].Email)
}

func TestEnrichEmails_NoDomains(t *testing.T) {
	h := &mockHunter{}
	leads := []model.Lead{{ID: "1", Name: "No Website Co"}}

	got := newTestEnricher(h).EnrichEmails(context.Background(), leads)

	assert.Equal(t, leads, got)
	assert.Empty(t, h.calls)
}
