package hunter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/domain-search", r.URL.Path)
		assert.Equal(t, "acmefloors.com", r.URL.Query().Get("domain"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(DomainSearchResponse{
			Data: DomainData{
				Domain: "acmefloors.com",
				Emails: []Email{
					{Value: "info@acmefloors.com", Confidence: 92, FirstName: "Jane", LastName: "Doe"},
					{Value: "sales@acmefloors.com", Confidence: 70},
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.DomainSearch(context.Background(), "acmefloors.com")

	require.NoError(t, err)
	require.Len(t, resp.Data.Emails, 2)
	assert.Equal(t, "info@acmefloors.com", resp.Data.Emails[0].Value)
	assert.Equal(t, 92, resp.Data.Emails[0].Confidence)
}

func TestDomainSearch_NoEmails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(DomainSearchResponse{Data: DomainData{Domain: "empty.com"}})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.DomainSearch(context.Background(), "empty.com")

	require.NoError(t, err)
	assert.Empty(t, resp.Data.Emails)
}

func TestDomainSearch_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"errors": [{"details": "rate limit"}]}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.DomainSearch(context.Background(), "acmefloors.com")

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "429")
}
