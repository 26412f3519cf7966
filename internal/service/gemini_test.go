package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutoria-escolar/tutoria-api/pkg/config"
)

func newGeminiFixture(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGeminiClient(config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, nil)
}

func TestGeminiGenerateReturnsFirstCandidate(t *testing.T) {
	client := newGeminiFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"RESUMEN:\nTodo bien."}]},"finishReason":"STOP"}]}`))
	})

	result, err := client.Generate(context.Background(), "analiza", 2000)
	require.NoError(t, err)
	assert.Equal(t, "RESUMEN:\nTodo bien.", result.Text)
	assert.Equal(t, "STOP", result.FinishReason)
}

func TestGeminiGenerateMalformedBodyIsTyped(t *testing.T) {
	client := newGeminiFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	})

	result, err := client.Generate(context.Background(), "analiza", 2000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMalformedResponse))
	require.NotNil(t, result)
	assert.Equal(t, "this is not json", result.Raw)
}

func TestGeminiGenerateErrorStatusIsNotMalformed(t *testing.T) {
	client := newGeminiFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota"}}`))
	})

	_, err := client.Generate(context.Background(), "analiza", 2000)
	require.Error(t, err)
	assert.False(t, errors.Is(err, errMalformedResponse))
}

func TestGenerateMalformedAnswerUsesParseFallback(t *testing.T) {
	client := newGeminiFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	})
	svc := NewReportService(client, nil)

	report, err := svc.Generate(context.Background(), singleIncidentRequest())
	require.NoError(t, err)
	assert.Equal(t, fallbackParseSummary, report.Summary)
	assert.Equal(t, fallbackRetryRecs, report.Recommendations)
	assert.Equal(t, "this is not json", report.Raw)
	assert.NotEmpty(t, report.Err)
}
