// Package gemini answers unrecognised shell commands with Google Gemini.
package gemini

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/Cyclone1070/vsh/internal/config"
	provider "github.com/Cyclone1070/vsh/internal/provider/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// systemPrompt asks the model to behave as the terminal itself.
const systemPrompt = `You are an Ubuntu terminal simulator. The user types commands into an Ubuntu 22.04 bash shell.
Provide a realistic, plausible and concise output for each command as if it were executed in a standard Ubuntu 22.04 terminal.
Do not explain the command, do not add any introductory text like "Here is the output:", and do not add any markdown formatting (like ` + "```" + `).
Only provide the raw, simulated terminal output.
If the command is invalid or would produce an error, return a realistic error message (e.g. 'bash: foo: command not found').
If the command would produce no output (like 'sudo apt update' finishing silently), return an empty string.`

var codeFence = regexp.MustCompile("(?s)^```[a-zA-Z0-9_-]*\\n?(.*?)\\n?```$")

// Resolver simulates terminal output for command lines through Gemini.
type Resolver struct {
	client    GeminiClient
	model     string
	maxTokens int32
	timeout   time.Duration
	limiter   *rate.Limiter
	logger    *zap.Logger

	mu sync.Mutex
	// holdUntil rejects requests locally while the API's retry delay runs.
	holdUntil time.Time
}

// NewResolver creates a resolver for the configured model.
// A non-positive RequestsPerMinute disables client-side rate limiting.
func NewResolver(client GeminiClient, cfg config.FallbackConfig, logger *zap.Logger) *Resolver {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerMinute > 0 {
		burst := max(1, cfg.RequestsPerMinute/4)
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), burst)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxOutputTokens,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
		limiter:   limiter,
		logger:    logger.Named("gemini"),
	}
}

// Resolve returns the simulated output of line.
func (r *Resolver) Resolve(ctx context.Context, line string) (string, error) {
	if wait := r.holdRemaining(); wait > 0 {
		return "", &provider.ProviderError{
			Code:       provider.ErrorCodeRateLimit,
			Message:    withRetryHint("rate limit exceeded", wait),
			Retryable:  true,
			RetryAfter: &wait,
		}
	}
	if !r.limiter.Allow() {
		return "", &provider.ProviderError{
			Code:      provider.ErrorCodeRateLimit,
			Message:   "too many AI-backed commands, wait a moment and try again",
			Retryable: true,
		}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	contents := []*genai.Content{genai.NewContentFromText(line, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		MaxOutputTokens:   r.maxTokens,
	}

	start := time.Now()
	resp, err := r.client.GenerateContent(ctx, r.model, contents, cfg)
	if err != nil {
		mapped := mapGeminiError(err)
		if after := provider.GetRetryAfter(mapped); after != nil && provider.IsRetryable(mapped) {
			r.hold(*after)
		}
		r.logger.Warn("generate content failed",
			zap.String("model", r.model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Bool("retryable", provider.IsRetryable(mapped)),
			zap.Error(err),
		)
		return "", mapped
	}

	text, err := responseText(resp)
	if err != nil {
		r.logger.Warn("unusable response", zap.String("model", r.model), zap.Error(err))
		return "", err
	}

	r.logger.Debug("generate content succeeded",
		zap.String("model", r.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

func (r *Resolver) hold(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if until := time.Now().Add(d); until.After(r.holdUntil) {
		r.holdUntil = until
	}
}

func (r *Resolver) holdRemaining() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Until(r.holdUntil)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", &provider.ProviderError{Code: provider.ErrorCodeEmptyResponse, Message: "empty response from model"}
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", &provider.ProviderError{
			Code:    provider.ErrorCodeContentBlocked,
			Message: "command blocked by safety filters",
		}
	}
	if len(resp.Candidates) == 0 {
		return "", &provider.ProviderError{Code: provider.ErrorCodeEmptyResponse, Message: "empty response from model"}
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", &provider.ProviderError{
			Code:    provider.ErrorCodeContentBlocked,
			Message: "command blocked by safety filters",
		}
	}

	var b strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			b.WriteString(part.Text)
		}
	}
	return stripFence(b.String()), nil
}

// stripFence removes a markdown code fence wrapped around the whole output.
func stripFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if m := codeFence.FindStringSubmatch(trimmed); m != nil {
		return m[1]
	}
	return strings.TrimRight(s, "\n")
}
