package gemini

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	provider "github.com/Cyclone1070/vsh/internal/provider/models"
	"google.golang.org/genai"
)

// mapGeminiError converts SDK and transport errors to ProviderError.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &provider.ProviderError{
			Code:       provider.ErrorCodeTimeout,
			Message:    "request timed out",
			Underlying: err,
			Retryable:  true,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &provider.ProviderError{
			Code:       provider.ErrorCodeNetwork,
			Message:    "request cancelled",
			Underlying: err,
			Retryable:  false,
		}
	}

	var apiErr genai.APIError
	if !asAPIError(err, &apiErr) {
		return &provider.ProviderError{
			Code:       provider.ErrorCodeNetwork,
			Message:    "network error",
			Underlying: err,
			Retryable:  true,
		}
	}

	switch apiErr.Code {
	case 401, 403:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeAuth,
			Message:    "authentication failed, check GEMINI_API_KEY",
			Underlying: err,
			Retryable:  false,
		}
	case 429:
		code, msg := provider.ErrorCodeRateLimit, "rate limit exceeded"
		if apiErr.Status == "RESOURCE_EXHAUSTED" {
			code, msg = provider.ErrorCodeQuota, "quota exceeded"
		}
		retryAfter := parseRetryAfter(apiErr)
		if retryAfter != nil {
			msg = withRetryHint(msg, *retryAfter)
		}
		return &provider.ProviderError{
			Code:       code,
			Message:    msg,
			Underlying: err,
			Retryable:  true,
			RetryAfter: retryAfter,
		}
	case 400, 404:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeInvalidRequest,
			Message:    fmt.Sprintf("invalid request: %s", apiErr.Message),
			Underlying: err,
			Retryable:  false,
		}
	case 500, 502, 503, 504:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeUnavailable,
			Message:    "service unavailable",
			Underlying: err,
			Retryable:  true,
		}
	default:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeNetwork,
			Message:    fmt.Sprintf("API error: %s", apiErr.Message),
			Underlying: err,
			Retryable:  true,
		}
	}
}

// asAPIError matches both value and pointer forms of genai.APIError.
func asAPIError(err error, target *genai.APIError) bool {
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		*target = *ptr
		return true
	}
	return errors.As(err, target)
}

// parseRetryAfter reads the RetryInfo detail of a 429 response, if present.
func parseRetryAfter(apiErr genai.APIError) *time.Duration {
	for _, detail := range apiErr.Details {
		if detail["@type"] != "type.googleapis.com/google.rpc.RetryInfo" {
			continue
		}
		raw, ok := detail["retryDelay"].(string)
		if !ok || len(raw) < 2 || raw[len(raw)-1] != 's' {
			continue
		}
		seconds, err := strconv.ParseFloat(raw[:len(raw)-1], 64)
		if err != nil {
			continue
		}
		d := time.Duration(seconds * float64(time.Second))
		return &d
	}
	return nil
}

// withRetryHint appends the wait to msg, rounded up to whole seconds.
func withRetryHint(msg string, d time.Duration) string {
	secs := max(1, int((d+time.Second-1)/time.Second))
	return fmt.Sprintf("%s, try again in %ds", msg, secs)
}
