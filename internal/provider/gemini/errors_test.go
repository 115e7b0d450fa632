package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	provider "github.com/Cyclone1070/vsh/internal/provider/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestMapGeminiError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantCode      provider.ErrorCode
		wantRetryable bool
	}{
		{"unauthorized", genai.APIError{Code: 401}, provider.ErrorCodeAuth, false},
		{"forbidden pointer", &genai.APIError{Code: 403}, provider.ErrorCodeAuth, false},
		{"rate limit", genai.APIError{Code: 429}, provider.ErrorCodeRateLimit, true},
		{"quota", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, provider.ErrorCodeQuota, true},
		{"bad request", genai.APIError{Code: 400, Message: "bad"}, provider.ErrorCodeInvalidRequest, false},
		{"unknown model", genai.APIError{Code: 404}, provider.ErrorCodeInvalidRequest, false},
		{"server error", genai.APIError{Code: 503}, provider.ErrorCodeUnavailable, true},
		{"other status", genai.APIError{Code: 418, Message: "teapot"}, provider.ErrorCodeNetwork, true},
		{"wrapped api error", fmt.Errorf("call: %w", genai.APIError{Code: 500}), provider.ErrorCodeUnavailable, true},
		{"deadline", context.DeadlineExceeded, provider.ErrorCodeTimeout, true},
		{"cancelled", context.Canceled, provider.ErrorCodeNetwork, false},
		{"transport", errors.New("dial tcp: no route"), provider.ErrorCodeNetwork, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapGeminiError(tt.err)

			var perr *provider.ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantCode, perr.Code)
			assert.Equal(t, tt.wantRetryable, perr.Retryable)
		})
	}
}

func TestMapGeminiError_Nil(t *testing.T) {
	assert.NoError(t, mapGeminiError(nil))
}

func TestParseRetryAfter(t *testing.T) {
	apiErr := genai.APIError{
		Code: 429,
		Details: []map[string]any{
			{"@type": "type.googleapis.com/google.rpc.QuotaFailure"},
			{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "2.5s"},
		},
	}

	err := mapGeminiError(apiErr)

	after := provider.GetRetryAfter(err)
	require.NotNil(t, after)
	assert.Equal(t, 2500*time.Millisecond, *after)
	assert.Equal(t, "rate limit exceeded, try again in 3s", err.Error())
}

func TestWithRetryHint(t *testing.T) {
	tests := []struct {
		name string
		wait time.Duration
		want string
	}{
		{"whole seconds", 12 * time.Second, "rate limit exceeded, try again in 12s"},
		{"fraction rounds up", 11*time.Second + 200*time.Millisecond, "rate limit exceeded, try again in 12s"},
		{"sub-second", 300 * time.Millisecond, "rate limit exceeded, try again in 1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, withRetryHint("rate limit exceeded", tt.wait))
		})
	}
}

func TestParseRetryAfter_Missing(t *testing.T) {
	assert.Nil(t, parseRetryAfter(genai.APIError{Code: 429}))
	assert.Nil(t, parseRetryAfter(genai.APIError{
		Details: []map[string]any{{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "soon"}},
	}))
}
