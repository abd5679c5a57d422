package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hupe1980/tripmesh/core"
)

// Compile time check to ensure TavilyClient satisfies the core.Retriever interface.
var _ core.Retriever = (*TavilyClient)(nil)

const defaultTavilyEndpoint = "https://api.tavily.com/search"

// TavilyOptions configures the Tavily search client.
type TavilyOptions struct {
	// Endpoint overrides the Tavily API URL, mainly for tests.
	Endpoint string
	// HTTPClient is the client used for requests.
	HTTPClient *http.Client
	// MaxResults caps how many results are requested per query.
	MaxResults int
}

// TavilyClient is a core.Retriever backed by the Tavily web search API.
type TavilyClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	maxResults int
}

// NewTavilyClient creates a new Tavily search client.
func NewTavilyClient(apiKey string, optFns ...func(o *TavilyOptions)) *TavilyClient {
	opts := TavilyOptions{
		Endpoint:   defaultTavilyEndpoint,
		HTTPClient: http.DefaultClient,
		MaxResults: 5,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &TavilyClient{
		apiKey:     apiKey,
		endpoint:   opts.Endpoint,
		httpClient: opts.HTTPClient,
		maxResults: opts.MaxResults,
	}
}

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

// Retrieve implements core.Retriever with a single blocking search call.
func (c *TavilyClient) Retrieve(ctx context.Context, query string) ([]core.SearchResult, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:      c.apiKey,
		Query:       query,
		MaxResults:  c.maxResults,
		SearchDepth: "basic",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily api error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tavily api status %d: %s", resp.StatusCode, payload)
	}

	var decoded tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]core.SearchResult, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		results = append(results, core.SearchResult{
			Title:   r.Title,
			Content: r.Content,
			URL:     r.URL,
		})
	}

	return results, nil
}
