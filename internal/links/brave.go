package links

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cartograph-ai/cartograph/internal/domain"
)

const (
	defaultBraveEndpoint = "https://api.search.brave.com/res/v1/web/search"

	// Brave rejects count values above 20.
	braveMaxCount = 20
)

// BraveClient searches the Brave web search API for article links.
type BraveClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewBraveClient creates a client for the hosted Brave endpoint.
func NewBraveClient(apiKey string) *BraveClient {
	return NewBraveClientWithEndpoint(apiKey, defaultBraveEndpoint)
}

// NewBraveClientWithEndpoint creates a client against an explicit endpoint,
// used by tests.
func NewBraveClientWithEndpoint(apiKey, endpoint string) *BraveClient {
	return &BraveClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type braveResponse struct {
	Web struct {
		Results []struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			Description string `json:"description"`
			Thumbnail   *struct {
				URL string `json:"url"`
			} `json:"thumbnail"`
		} `json:"results"`
	} `json:"web"`
}

// SearchWeb returns up to max web links for the query. Quota exhaustion (429)
// and payment-required (402) degrade to an empty list; other failures error.
func (c *BraveClient) SearchWeb(ctx context.Context, query string, max int) ([]domain.WebLink, error) {
	if query == "" {
		return []domain.WebLink{}, nil
	}
	if max <= 0 {
		max = DefaultMaxResults
	}
	count := max
	if count > braveMaxCount {
		count = braveMaxCount
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid brave endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("count", strconv.Itoa(count))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusPaymentRequired {
		log.Printf("brave: quota exceeded (%d), returning empty list", resp.StatusCode)
		return []domain.WebLink{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave search error %d", resp.StatusCode)
	}

	var payload braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode brave response: %w", err)
	}

	results := payload.Web.Results
	if len(results) > max {
		results = results[:max]
	}

	out := make([]domain.WebLink, 0, len(results))
	for _, r := range results {
		link := domain.WebLink{
			URL:         r.URL,
			Title:       r.Title,
			Description: r.Description,
		}
		if r.Thumbnail != nil {
			link.Thumbnail = r.Thumbnail.URL
		}
		out = append(out, link)
	}
	return out, nil
}
