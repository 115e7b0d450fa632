package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Cyclone1070/vsh/internal/config"
	provider "github.com/Cyclone1070/vsh/internal/provider/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func testConfig() config.FallbackConfig {
	cfg := config.DefaultConfig().Fallback
	cfg.RequestsPerMinute = 0
	return cfg
}

func TestResolve_HappyPath(t *testing.T) {
	var gotModel string
	var gotContents []*genai.Content
	var gotConfig *genai.GenerateContentConfig
	client := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotModel, gotContents, gotConfig = model, contents, cfg
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return textResponse("Linux devbox ", "6.8.0 x86_64\n"), nil
		},
	}
	r := NewResolver(client, testConfig(), nil)

	out, err := r.Resolve(context.Background(), "uname -srm")

	require.NoError(t, err)
	assert.Equal(t, "Linux devbox 6.8.0 x86_64", out)
	assert.Equal(t, "gemini-2.5-flash-lite", gotModel)
	require.Len(t, gotContents, 1)
	assert.Equal(t, "uname -srm", gotContents[0].Parts[0].Text)
	require.NotNil(t, gotConfig.SystemInstruction)
	assert.Contains(t, gotConfig.SystemInstruction.Parts[0].Text, "Ubuntu 22.04")
	assert.Equal(t, int32(1024), gotConfig.MaxOutputTokens)
}

func TestResolve_SkipsThoughtParts(t *testing.T) {
	client := &MockGeminiClient{
		GenerateContentFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			resp := textResponse("thinking...", "hello")
			resp.Candidates[0].Content.Parts[0].Thought = true
			return resp, nil
		},
	}
	r := NewResolver(client, testConfig(), nil)

	out, err := r.Resolve(context.Background(), "echo hello")

	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestResolve_EmptyOutputIsValid(t *testing.T) {
	client := &MockGeminiClient{
		GenerateContentFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse(""), nil
		},
	}
	r := NewResolver(client, testConfig(), nil)

	out, err := r.Resolve(context.Background(), "sudo apt update")

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "total 0\n", "total 0"},
		{"bare fence", "```\ntotal 0\n```", "total 0"},
		{"language fence", "```bash\n$ ls\nfile\n```\n", "$ ls\nfile"},
		{"inner fence kept", "see ```code``` here", "see ```code``` here"},
		{"leading spaces kept", "  indented\n", "  indented"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFence(tt.in))
		})
	}
}

func TestResolve_ResponseErrors(t *testing.T) {
	tests := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		wantCode provider.ErrorCode
	}{
		{"nil response", nil, provider.ErrorCodeEmptyResponse},
		{"no candidates", &genai.GenerateContentResponse{}, provider.ErrorCodeEmptyResponse},
		{
			"prompt blocked",
			&genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			},
			provider.ErrorCodeContentBlocked,
		},
		{
			"safety finish",
			&genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			},
			provider.ErrorCodeContentBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockGeminiClient{
				GenerateContentFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					return tt.resp, nil
				},
			}
			r := NewResolver(client, testConfig(), nil)

			_, err := r.Resolve(context.Background(), "ls /proc")

			var perr *provider.ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantCode, perr.Code)
		})
	}
}

func TestResolve_ClientErrorIsMapped(t *testing.T) {
	client := &MockGeminiClient{
		GenerateContentFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, genai.APIError{Code: 401, Message: "API key not valid"}
		},
	}
	r := NewResolver(client, testConfig(), nil)

	_, err := r.Resolve(context.Background(), "ls")

	assert.ErrorIs(t, err, provider.ErrAuthentication)
	assert.Equal(t, "authentication failed, check GEMINI_API_KEY", err.Error())
}

func TestResolve_RateLimited(t *testing.T) {
	client := &MockGeminiClient{
		GenerateContentFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("ok"), nil
		},
	}
	cfg := testConfig()
	cfg.RequestsPerMinute = 1
	r := NewResolver(client, cfg, nil)

	_, err := r.Resolve(context.Background(), "first")
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "second")
	assert.ErrorIs(t, err, provider.ErrRateLimit)
	assert.True(t, provider.IsRetryable(err))
	assert.Equal(t, 1, client.Calls, "limited request must not reach the API")
}

func TestResolve_RetryDelayHoldsRequests(t *testing.T) {
	retryInfo := map[string]any{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "12s"}
	tests := []struct {
		name      string
		apiErr    genai.APIError
		wantFirst string
		wantHold  bool
	}{
		{
			"rate limit with delay",
			genai.APIError{Code: 429, Details: []map[string]any{retryInfo}},
			"rate limit exceeded, try again in 12s",
			true,
		},
		{
			"quota with delay",
			genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Details: []map[string]any{retryInfo}},
			"quota exceeded, try again in 12s",
			true,
		},
		{
			"rate limit without delay",
			genai.APIError{Code: 429},
			"rate limit exceeded",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockGeminiClient{
				GenerateContentFunc: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					return nil, tt.apiErr
				},
			}
			r := NewResolver(client, testConfig(), nil)

			_, err := r.Resolve(context.Background(), "first")
			require.Error(t, err)
			assert.Equal(t, tt.wantFirst, err.Error())
			assert.True(t, provider.IsRetryable(err))

			_, err = r.Resolve(context.Background(), "second")
			require.Error(t, err)
			if tt.wantHold {
				assert.Equal(t, "rate limit exceeded, try again in 12s", err.Error())
				assert.ErrorIs(t, err, provider.ErrRateLimit)
				require.NotNil(t, provider.GetRetryAfter(err))
				assert.Equal(t, 1, client.Calls, "held request must not reach the API")
			} else {
				assert.Equal(t, 2, client.Calls)
			}
		})
	}
}

func TestResolve_TimeoutMapsToTimeout(t *testing.T) {
	client := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, _ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	r := NewResolver(client, testConfig(), nil)
	r.timeout = 10 * time.Millisecond

	_, err := r.Resolve(context.Background(), "sleep 100")

	assert.ErrorIs(t, err, provider.ErrTimeout)
}

func TestNewHTTPClient_UsesRetryTransport(t *testing.T) {
	hc := NewHTTPClient(testConfig(), nil)

	require.NotNil(t, hc)
	assert.NotNil(t, hc.Transport)
}

func TestProviderError_IsMatchesOnlyItsSentinel(t *testing.T) {
	err := &provider.ProviderError{Code: provider.ErrorCodeQuota, Message: "quota exceeded", Underlying: errors.New("429")}

	assert.ErrorIs(t, err, provider.ErrQuotaExceeded)
	assert.NotErrorIs(t, err, provider.ErrRateLimit)
	assert.Equal(t, "quota_exceeded: quota exceeded (429)", err.Detail())
}
