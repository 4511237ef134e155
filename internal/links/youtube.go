// Package links implements the external search collaborators that enrich
// concepts and study-path steps with video and web resources. Enrichment is
// non-critical: providers degrade to empty results on quota or auth failure.
package links

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/cartograph-ai/cartograph/internal/domain"
)

// DefaultMaxResults caps link results per provider per query.
const DefaultMaxResults = 3

// YouTubeClient searches YouTube for videos matching a concept query.
type YouTubeClient struct {
	svc *youtube.Service
}

// NewYouTubeClient creates a client authenticated with an API key. Extra
// options (custom endpoint, http client) are accepted for tests.
func NewYouTubeClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeClient, error) {
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &YouTubeClient{svc: svc}, nil
}

// SearchVideos returns up to max video links for the query. Quota and auth
// failures degrade to an empty list.
func (c *YouTubeClient) SearchVideos(ctx context.Context, query string, max int) ([]domain.VideoLink, error) {
	if query == "" {
		return []domain.VideoLink{}, nil
	}
	if max <= 0 {
		max = DefaultMaxResults
	}

	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(max)).
		Context(ctx).
		Do()
	if err != nil {
		if isQuotaOrAuthError(err) {
			log.Printf("youtube: quota/auth failure, returning empty list: %v", err)
			return []domain.VideoLink{}, nil
		}
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	results := make([]domain.VideoLink, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		link := domain.VideoLink{
			URL:   "https://www.youtube.com/watch?v=" + item.Id.VideoId,
			Title: item.Snippet.Title,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
			link.Thumbnail = item.Snippet.Thumbnails.Medium.Url
		}
		results = append(results, link)
	}
	return results, nil
}

func isQuotaOrAuthError(err error) bool {
	apiErr, ok := err.(*googleapi.Error)
	if !ok {
		return false
	}
	switch apiErr.Code {
	case 401, 402, 403, 429:
		return true
	default:
		return false
	}
}
