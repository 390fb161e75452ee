package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultGatewayBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// GatewayClient performs chat completions against an OpenAI-compatible
// gateway endpoint. The provider selector header routes the request
// when the gateway fronts multiple upstreams.
type GatewayClient struct {
	apiKey   string
	baseURL  string
	provider string
	http     *http.Client
	limiter  *rate.Limiter
}

// chatRequest is the request body for POST /chat/completions.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GatewayOption configures the gateway client.
type GatewayOption func(*GatewayClient)

// WithGatewayBaseURL overrides the default endpoint.
func WithGatewayBaseURL(url string) GatewayOption {
	return func(c *GatewayClient) {
		c.baseURL = url
	}
}

// WithProvider sets the provider selector header value.
func WithProvider(provider string) GatewayOption {
	return func(c *GatewayClient) {
		c.provider = provider
	}
}

// WithGatewayHTTPClient overrides the default http.Client.
func WithGatewayHTTPClient(hc *http.Client) GatewayOption {
	return func(c *GatewayClient) {
		c.http = hc
	}
}

// WithRateLimit paces outgoing requests at r per second.
func WithRateLimit(r rate.Limit, burst int) GatewayOption {
	return func(c *GatewayClient) {
		c.limiter = rate.NewLimiter(r, burst)
	}
}

// NewGateway creates a gateway-backed Generator.
func NewGateway(apiKey string, opts ...GatewayOption) *GatewayClient {
	c := &GatewayClient{
		apiKey:  apiKey,
		baseURL: defaultGatewayBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Generate submits one prompt and returns the first choice's text.
// Non-2xx responses surface as *APIError.
func (c *GatewayClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", eris.Wrap(err, "gateway: rate limiter wait")
		}
	}

	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", eris.Wrap(err, "gateway: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", eris.Wrap(err, "gateway: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.provider != "" {
		req.Header.Set("X-Provider", c.provider)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "gateway: send request")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", eris.Wrap(err, "gateway: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: clipBody(respBody)}
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", eris.Wrap(err, "gateway: unmarshal response")
	}
	if len(result.Choices) == 0 {
		return "", eris.New("gateway: response has no choices")
	}

	return result.Choices[0].Message.Content, nil
}

func clipBody(b []byte) string {
	const max = 512
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max])
}
