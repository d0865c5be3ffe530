package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfb-hart/lead-command/internal/config"
)

func testScraper() *Scraper {
	return NewScraper(config.ScrapeConfig{TimeoutSecs: 5, DelayMillis: 0, BatchSize: 10})
}

func serveHTML(pages map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
}

func TestScrapeWebsite_HomepageEmail(t *testing.T) {
	srv := serveHTML(map[string]string{
		"/": `<html><body>Reach us at info@acme.com or sales@acme.com</body></html>`,
	})
	defer srv.Close()

	result := testScraper().ScrapeWebsite(context.Background(), srv.URL)

	assert.True(t, result.Found)
	assert.Equal(t, "info@acme.com", result.Email)
	assert.Equal(t, []string{"info@acme.com", "sales@acme.com"}, result.AllEmails)
}

func TestScrapeWebsite_ContactPageFallback(t *testing.T) {
	srv := serveHTML(map[string]string{
		"/":        `<html><body>Welcome to Acme Floors</body></html>`,
		"/contact": `<html><body>Email owner@acme.com</body></html>`,
	})
	defer srv.Close()

	result := testScraper().ScrapeWebsite(context.Background(), srv.URL)

	assert.True(t, result.Found)
	assert.Equal(t, "owner@acme.com", result.Email)
}

func TestScrapeWebsite_ProbesPathsInOrder(t *testing.T) {
	// /contact and /contact-us 404; /about has the email. Later paths
	// must not be fetched once an email is found.
	var fetched []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched = append(fetched, r.URL.Path)
		if r.URL.Path == "/" {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html>no emails here</html>`))
			return
		}
		if r.URL.Path == "/about" {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html>contact@acme.com</html>`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	result := testScraper().ScrapeWebsite(context.Background(), srv.URL)

	require.True(t, result.Found)
	assert.Equal(t, "contact@acme.com", result.Email)
	assert.Equal(t, []string{"/", "/contact", "/contact-us", "/about"}, fetched)
}

func TestScrapeWebsite_OwnerName(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"title prefix", `<p>Owner: John Smith</p>`, "John Smith"},
		{"title suffix", `<p>Jane Doe, Founder</p>`, "Jane Doe"},
		{"heading tag", `<h2>Bob Jones - Owner</h2>`, "Bob Jones"},
		{"no match", `<p>Quality floors since 1987</p>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractOwnerName(tt.html))
		})
	}
}

func TestScrapeWebsite_OwnerNameFromContactPage(t *testing.T) {
	srv := serveHTML(map[string]string{
		"/":        `<html><body>Acme Floors</body></html>`,
		"/contact": `<html><body>Owner: Sam Hill &mdash; owner@acme.com</body></html>`,
	})
	defer srv.Close()

	result := testScraper().ScrapeWebsite(context.Background(), srv.URL)

	assert.Equal(t, "Sam Hill", result.OwnerName)
	assert.Equal(t, "owner@acme.com", result.Email)
}

func TestScrapeWebsite_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	result := testScraper().ScrapeWebsite(context.Background(), srv.URL)

	assert.False(t, result.Found)
	assert.Equal(t, "could not fetch page", result.Error)
}

func TestScrapeWebsite_NonHTMLRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("info@acme.com"))
	}))
	defer srv.Close()

	result := testScraper().ScrapeWebsite(context.Background(), srv.URL)

	assert.False(t, result.Found)
	assert.Equal(t, "could not fetch page", result.Error)
}

func TestExtractEmails_Exclusions(t *testing.T) {
	s := testScraper()
	html := `test@example.com real@acme.com logo@2x.png.jpg tracker@sentry.io noreply@wixpress.com pic@site.png`

	emails := s.extractEmails(html)
	assert.Equal(t, []string{"real@acme.com"}, emails)
}

func TestPrioritizeEmail(t *testing.T) {
	tests := []struct {
		name   string
		emails []string
		want   string
	}{
		{"empty", nil, ""},
		{"single", []string{"x@y.com"}, "x@y.com"},
		{"info beats sales", []string{"sales@x.com", "info@x.com"}, "info@x.com"},
		{"owner beats info", []string{"info@x.com", "owner@x.com"}, "owner@x.com"},
		{"no priority match falls back to first", []string{"support@x.com", "billing@x.com"}, "support@x.com"},
		{"case insensitive", []string{"Support@x.com", "INFO@x.com"}, "INFO@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrioritizeEmail(tt.emails))
		})
	}
}

func TestScrapeBatch(t *testing.T) {
	srvA := serveHTML(map[string]string{"/": `<html>info@a.com</html>`})
	defer srvA.Close()
	srvB := serveHTML(map[string]string{"/": `<html>no emails</html>`})
	defer srvB.Close()

	results := testScraper().ScrapeBatch(context.Background(), []string{srvA.URL, srvB.URL})

	require.Len(t, results, 2)
	assert.True(t, results[srvA.URL].Found)
	assert.Equal(t, "info@a.com", results[srvA.URL].Email)
	assert.False(t, results[srvB.URL].Found)
}

func TestScrapeBatch_CapsAtBatchSize(t *testing.T) {
	s := NewScraper(config.ScrapeConfig{TimeoutSecs: 1, BatchSize: 2})

	srv := serveHTML(map[string]string{"/": `<html>info@a.com</html>`})
	defer srv.Close()

	sites := []string{srv.URL + "?1", srv.URL + "?2", srv.URL + "?3"}
	results := s.ScrapeBatch(context.Background(), sites)

	assert.Len(t, results, 2)
}

func TestScrapeWebsite_DedupesAndCaps(t *testing.T) {
	srv := serveHTML(map[string]string{
		"/": `<html>a@x.com a@x.com b@x.com c@x.com d@x.com e@x.com f@x.com</html>`,
	})
	defer srv.Close()

	result := testScraper().ScrapeWebsite(context.Background(), srv.URL)

	assert.Len(t, result.AllEmails, 5)
	assert.Equal(t, "a@x.com", result.AllEmails[0])
}
