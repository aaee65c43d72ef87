// Package llm holds the Granite text-generation boundary. The
// normalization core never imports this package; the generation
// service composes the two, so a missing or failing model simply
// becomes the "unavailable" signal.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/smartsdlc/go-sdlc-backend/internal/sdlc/domain"
)

const (
	defaultModelID = "ibm/granite-3-8b-instruct"
	apiVersion     = "2024-05-01"

	maxAttempts = 3
	retryDelay  = 2 * time.Second
)

// Options configures a Client. APIKey and ProjectID empty means the
// client reports unconfigured and callers skip the model entirely.
type Options struct {
	BaseURL   string
	APIKey    string
	ProjectID string
	ModelID   string
	Timeout   time.Duration
	// RequestsPerMinute caps outbound generation calls. Zero disables
	// the limiter.
	RequestsPerMinute int
}

// Client calls a watsonx-style text-generation endpoint.
type Client struct {
	baseURL   string
	apiKey    string
	projectID string
	modelID   string
	http      *http.Client
	limiter   *rate.Limiter
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewClient(opt Options) *Client {
	if opt.ModelID == "" {
		opt.ModelID = defaultModelID
	}
	if opt.Timeout == 0 {
		opt.Timeout = 60 * time.Second
	}
	var limiter *rate.Limiter
	if opt.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opt.RequestsPerMinute)/60.0), opt.RequestsPerMinute)
	}
	return &Client{
		baseURL:   opt.BaseURL,
		apiKey:    opt.APIKey,
		projectID: opt.ProjectID,
		modelID:   opt.ModelID,
		http:      &http.Client{Timeout: opt.Timeout},
		limiter:   limiter,
		sleep:     sleepCtx,
	}
}

// IsConfigured reports whether the client has enough configuration to
// attempt a generation call.
func (c *Client) IsConfigured() bool {
	return c.baseURL != "" && c.apiKey != "" && c.projectID != ""
}

type generationRequest struct {
	ModelID    string          `json:"model_id"`
	ProjectID  string          `json:"project_id"`
	Input      string          `json:"input"`
	Parameters ModelParameters `json:"parameters"`
}

// ModelParameters mirrors the generation parameters the original
// service used (greedy decoding, low temperature).
type ModelParameters struct {
	DecodingMethod string  `json:"decoding_method"`
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
}

type generationResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
}

// GenerateBreakdown sends the breakdown prompt for req and returns the
// raw model text. Transient upstream failures (5xx, network) are
// retried with a delay; 4xx responses are terminal.
func (c *Client) GenerateBreakdown(ctx context.Context, req domain.Request) (string, error) {
	if !c.IsConfigured() {
		return "", fmt.Errorf("llm client is not configured")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	body, err := json.Marshal(generationRequest{
		ModelID:   c.modelID,
		ProjectID: c.projectID,
		Input:     BuildPrompt(req),
		Parameters: ModelParameters{
			DecodingMethod: "greedy",
			MaxNewTokens:   2000,
			Temperature:    0.3,
			TopP:           0.9,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generation request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, retryDelay); err != nil {
				return "", err
			}
		}

		text, retryable, err := c.generateOnce(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", fmt.Errorf("generation failed after %d attempts: %w", maxAttempts, lastErr)
}

func (c *Client) generateOnce(ctx context.Context, body []byte) (text string, retryable bool, err error) {
	url := c.baseURL + "/ml/v1/text/generation?version=" + apiVersion
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", true, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("generation endpoint returned status %d", resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", false, fmt.Errorf("generation endpoint returned status %d: %s", resp.StatusCode, string(msg))
	}

	var out generationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", false, fmt.Errorf("decode generation response: %w", err)
	}
	if len(out.Results) == 0 {
		return "", false, fmt.Errorf("generation response has no results")
	}
	return out.Results[0].GeneratedText, false, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
