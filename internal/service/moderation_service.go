package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trovehq/trove-backend/internal/domain"
	pkglogger "github.com/trovehq/trove-backend/pkg/logger"
)

// ModerationService forwards safety checks to external moderation endpoints.
//
// The two checks carry opposite failure defaults: an unmoderated image poses
// more harm than an unmoderated username, so image checks fail closed
// (block on uncertainty) while username checks fail open (allow on
// uncertainty).
type ModerationService interface {
	CheckImage(ctx context.Context, imageURL string) *domain.CheckResult
	CheckUsername(ctx context.Context, username string) *domain.CheckResult
}

type moderationService struct {
	imageCheckURL    string
	usernameCheckURL string
	httpClient       *http.Client
}

// NewModerationService creates a new ModerationService
func NewModerationService(imageCheckURL, usernameCheckURL string) ModerationService {
	return &moderationService{
		imageCheckURL:    imageCheckURL,
		usernameCheckURL: usernameCheckURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CheckImage forwards the image URL to the moderation endpoint. Fails
// CLOSED: any transport error, non-2xx status, or undecodable body blocks
// the image.
func (s *moderationService) CheckImage(ctx context.Context, imageURL string) *domain.CheckResult {
	result, err := s.forward(ctx, s.imageCheckURL, map[string]string{"image_url": imageURL})
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("image safety check failed, blocking")
		return &domain.CheckResult{Safe: false, Error: err.Error()}
	}
	return result
}

// CheckUsername forwards the username to the moderation endpoint. Fails
// OPEN: any failure allows the username.
func (s *moderationService) CheckUsername(ctx context.Context, username string) *domain.CheckResult {
	result, err := s.forward(ctx, s.usernameCheckURL, map[string]string{"username": username})
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("username safety check failed, allowing")
		return &domain.CheckResult{Safe: true}
	}
	return result
}

// forward posts a JSON payload to the moderation endpoint and decodes the
// {safe, error} response
func (s *moderationService) forward(ctx context.Context, endpoint string, payload map[string]string) (*domain.CheckResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("moderation endpoint returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var result domain.CheckResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}
