package gemini

import (
	"context"
	"net/http"
	"time"

	"github.com/Cyclone1070/vsh/internal/config"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient defines the interface for interacting with the Gemini API.
// This abstraction allows for easier testing.
type GeminiClient interface {
	// GenerateContent sends a request to the Gemini API and returns the response
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// RealGeminiClient wraps the official SDK client to satisfy GeminiClient.
type RealGeminiClient struct {
	client *genai.Client
}

// NewRealGeminiClient creates a new RealGeminiClient from an SDK client.
func NewRealGeminiClient(client *genai.Client) *RealGeminiClient {
	return &RealGeminiClient{client: client}
}

// GenerateContent calls the SDK's GenerateContent method.
func (c *RealGeminiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.client.Models.GenerateContent(ctx, model, contents, config)
}

// NewClient builds an SDK client for the Gemini API backend using a retrying transport.
func NewClient(ctx context.Context, cfg config.FallbackConfig, logger *zap.Logger) (*RealGeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: NewHTTPClient(cfg, logger),
	})
	if err != nil {
		return nil, err
	}
	return NewRealGeminiClient(client), nil
}

// NewHTTPClient returns an *http.Client that retries transient failures with
// exponential backoff.
func NewHTTPClient(cfg config.FallbackConfig, logger *zap.Logger) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = time.Duration(cfg.RetryWaitMinMs) * time.Millisecond
	retryClient.RetryWaitMax = time.Duration(cfg.RetryWaitMaxMs) * time.Millisecond
	retryClient.Logger = nil
	if logger != nil {
		retryClient.Logger = leveledLogger{logger.Named("http").Sugar()}
	}
	return retryClient.StandardClient()
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger.
type leveledLogger struct {
	s *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}
