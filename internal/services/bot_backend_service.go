package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"arthurchat/internal/logger"
	"arthurchat/internal/version"

	"github.com/go-resty/resty/v2"
)

// ErrBackendNotConfigured is returned when no backend URL has been set.
var ErrBackendNotConfigured = errors.New("bot backend URL not configured")

// BotBackend answers a user input with the bot's reply.
type BotBackend interface {
	SendMessage(ctx context.Context, input string) (string, error)
}

type botRequest struct {
	InputData string `json:"inputData"`
}

type botResponse struct {
	Response *string `json:"response"`
}

// BotBackendService calls the remote bot endpoint over HTTP.
type BotBackendService struct {
	initialized bool
	url         string
	timeout     time.Duration
	client      *resty.Client
}

// NewBotBackendService creates a client for url. A zero timeout means no client-side timeout.
func NewBotBackendService(url string, timeout time.Duration) *BotBackendService {
	return &BotBackendService{
		url:     strings.TrimSpace(url),
		timeout: timeout,
	}
}

// Name returns the service name "bot_backend" for registration.
func (b *BotBackendService) Name() string {
	return "bot_backend"
}

// Initialize builds the HTTP client.
func (b *BotBackendService) Initialize() error {
	b.client = resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", version.UserAgent())
	if b.timeout > 0 {
		b.client.SetTimeout(b.timeout)
	}
	b.initialized = true
	logger.Debug("BotBackendService initialized", "url", b.url, "timeout", b.timeout.String())
	return nil
}

// URL returns the configured endpoint.
func (b *BotBackendService) URL() string {
	return b.url
}

// SendMessage posts input to the backend and returns the response text.
func (b *BotBackendService) SendMessage(ctx context.Context, input string) (string, error) {
	if !b.initialized {
		return "", fmt.Errorf("bot backend service not initialized")
	}
	if b.url == "" {
		return "", ErrBackendNotConfigured
	}

	logger.Debug("Sending message to bot backend", "url", b.url, "length", len(input))

	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(&botRequest{InputData: input}).
		Post(b.url)
	if err != nil {
		return "", fmt.Errorf("bot backend request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("bot backend status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	var decoded botResponse
	if err := json.Unmarshal(resp.Body(), &decoded); err != nil {
		return "", fmt.Errorf("decode bot response: %w", err)
	}
	if decoded.Response == nil {
		return "", fmt.Errorf("bot response missing \"response\" field")
	}

	logger.Debug("Bot backend replied", "status", resp.StatusCode(), "length", len(*decoded.Response))
	return *decoded.Response, nil
}
