package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/trovehq/trove-backend/internal/domain"
)

// Music search limits
const (
	musicDefaultLimit = 20
	musicMaxLimit     = 50
)

// MusicService proxies track search to the external music API
type MusicService interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Track, error)
}

type musicService struct {
	searchURL  string
	httpClient *http.Client
}

// NewMusicService creates a new MusicService
func NewMusicService(searchURL string) MusicService {
	return &musicService{
		searchURL: searchURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// deezerResponse is the upstream search payload shape
type deezerResponse struct {
	Data []struct {
		ID       int64  `json:"id"`
		Title    string `json:"title"`
		Preview  string `json:"preview"`
		Link     string `json:"link"`
		Duration int    `json:"duration"`
		Artist   struct {
			Name string `json:"name"`
		} `json:"artist"`
		Album struct {
			CoverMedium string `json:"cover_medium"`
		} `json:"album"`
	} `json:"data"`
}

// Search queries the music API and maps its rows to Tracks
func (s *musicService) Search(ctx context.Context, query string, limit int) ([]domain.Track, error) {
	if limit <= 0 {
		limit = musicDefaultLimit
	}
	if limit > musicMaxLimit {
		limit = musicMaxLimit
	}

	endpoint := fmt.Sprintf("%s?q=%s&limit=%d", s.searchURL, url.QueryEscape(query), limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("music search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("music API returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var upstream deezerResponse
	if err := json.Unmarshal(data, &upstream); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	tracks := make([]domain.Track, len(upstream.Data))
	for i, row := range upstream.Data {
		tracks[i] = domain.Track{
			TrackID:    row.ID,
			PreviewURL: row.Preview,
			TrackName:  row.Title,
			Artist:     row.Artist.Name,
			AlbumArt:   row.Album.CoverMedium,
			DeezerURL:  row.Link,
			Duration:   row.Duration,
		}
	}
	return tracks, nil
}
