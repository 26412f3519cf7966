package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/tutoria-escolar/tutoria-api/pkg/config"
	appErrors "github.com/tutoria-escolar/tutoria-api/pkg/errors"
)

// errMalformedResponse marks a 2xx reply whose body could not be decoded.
// Callers distinguish it from transport failures when picking fallback text.
var errMalformedResponse = errors.New("malformed generation response")

// FinishMaxTokens is the finish reason reported when generation hit the
// output token budget.
const FinishMaxTokens = "MAX_TOKENS"

// GenerationResult is one model completion. Raw keeps the upstream body so
// degraded responses can surface it for diagnosis.
type GenerationResult struct {
	Text         string
	FinishReason string
	Raw          string
}

type textGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (*GenerationResult, error)
}

// GeminiClient talks to the Google generative language REST API.
type GeminiClient struct {
	cfg    config.GeminiConfig
	http   *http.Client
	logger *zap.Logger
}

// NewGeminiClient constructs the client.
func NewGeminiClient(cfg config.GeminiConfig, logger *zap.Logger) *GeminiClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// Generate sends one prompt and returns the first candidate's text. A non-2xx
// status or an unparseable body comes back as an error carrying the raw body.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, maxTokens int) (*GenerationResult, error) {
	if c.cfg.APIKey == "" {
		return nil, appErrors.New(appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "generative backend is not configured")
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: maxTokens,
			TopP:            0.95,
			TopK:            40,
		},
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode generation request")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build generation request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "call generative backend")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read generation response")
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		c.logger.Warn("generative backend returned error status",
			zap.Int("status", res.StatusCode),
			zap.ByteString("body", body),
		)
		return &GenerationResult{Raw: string(body)},
			appErrors.New(appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("generative backend status %d", res.StatusCode))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &GenerationResult{Raw: string(body)},
			appErrors.Wrap(fmt.Errorf("%w: %v", errMalformedResponse, err), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode generation response")
	}

	result := &GenerationResult{Raw: string(body)}
	if len(parsed.Candidates) > 0 {
		result.FinishReason = parsed.Candidates[0].FinishReason
		if parts := parsed.Candidates[0].Content.Parts; len(parts) > 0 {
			result.Text = parts[0].Text
		}
	}
	return result, nil
}
