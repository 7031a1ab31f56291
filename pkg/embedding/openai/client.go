package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Client is a minimal OpenAI-compatible embeddings client.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string

	dimension  int
	maxRetries int
	httpDo     *http.Client
}

func New(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Model:      model,
		maxRetries: 3,
		httpDo: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type embeddingsRequest struct {
	Input string `json:"input"`
	Model string `json:"model"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Encode запрашивает вектор для текста у /embeddings.
// 429 и 5xx ретраятся с экспоненциальной задержкой, Retry-After учитывается.
func (c *Client) Encode(ctx context.Context, text string) ([]float32, error) {
	if c.APIKey == "" {
		return nil, errors.New("embeddings api key is empty")
	}
	reqBody := embeddingsRequest{Input: text, Model: c.Model}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/embeddings", c.BaseURL)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

		resp, err := c.httpDo.Do(httpReq)
		if err != nil {
			lastErr = err
			if sleepErr := sleepCtx(ctx, retryDelay(attempt)); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			delay := retryDelay(attempt)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					delay = time.Duration(secs) * time.Second
				}
			}
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("embeddings http %d", resp.StatusCode)
			if sleepErr := sleepCtx(ctx, delay); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}

		if resp.StatusCode >= 300 {
			var errMap map[string]any
			_ = json.NewDecoder(resp.Body).Decode(&errMap)
			_ = resp.Body.Close()
			return nil, fmt.Errorf("embeddings http %d: %v", resp.StatusCode, errMap)
		}

		var out embeddingsResponse
		err = json.NewDecoder(resp.Body).Decode(&out)
		_ = resp.Body.Close()
		if err != nil {
			return nil, err
		}
		if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
			return nil, errors.New("no embedding returned by model")
		}
		v := out.Data[0].Embedding
		if c.dimension == 0 {
			c.dimension = len(v)
		}
		return v, nil
	}
	return nil, fmt.Errorf("embeddings failed after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) Dimension() int { return c.dimension }

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func retryDelay(attempt int) time.Duration {
	base := 200 * time.Millisecond
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
