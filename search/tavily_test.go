package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTavilyClient_Retrieve(t *testing.T) {
	t.Run("decodes results and sends expected request", func(t *testing.T) {
		var captured tavilyRequest

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]string{
					{"title": "Tokyo guide", "content": "Ramen everywhere.", "url": "https://example.com/tokyo"},
					{"title": "Sushi spots", "content": "Omakase picks.", "url": "https://example.com/sushi"},
				},
			})
		}))
		defer srv.Close()

		client := NewTavilyClient("test-key", func(o *TavilyOptions) {
			o.Endpoint = srv.URL
			o.MaxResults = 3
		})

		results, err := client.Retrieve(context.Background(), "best restaurants in Tokyo")
		require.NoError(t, err)

		require.Len(t, results, 2)
		assert.Equal(t, "Tokyo guide", results[0].Title)
		assert.Equal(t, "https://example.com/sushi", results[1].URL)

		assert.Equal(t, "test-key", captured.APIKey)
		assert.Equal(t, "best restaurants in Tokyo", captured.Query)
		assert.Equal(t, 3, captured.MaxResults)
		assert.Equal(t, "basic", captured.SearchDepth)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid api key", http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewTavilyClient("bad-key", func(o *TavilyOptions) {
			o.Endpoint = srv.URL
		})

		_, err := client.Retrieve(context.Background(), "anything")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("context cancellation aborts the call", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		client := NewTavilyClient("test-key", func(o *TavilyOptions) {
			o.Endpoint = srv.URL
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Retrieve(ctx, "anything")
		require.Error(t, err)
	})

	t.Run("empty result set is not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results": []}`))
		}))
		defer srv.Close()

		client := NewTavilyClient("test-key", func(o *TavilyOptions) {
			o.Endpoint = srv.URL
		})

		results, err := client.Retrieve(context.Background(), "obscure query")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
