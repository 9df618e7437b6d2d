// Package analyze calls a remote language-model endpoint to analyze
// extracted study text. Two wire modes are supported: a same-origin proxy
// that hides the provider key, and a direct OpenAI-compatible chat
// completion call.
package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const (
	// MaxAnalysisRunes bounds how much extracted text is sent remotely.
	MaxAnalysisRunes = 20000

	// DefaultModel and DefaultMaxTokens mirror the provider defaults.
	DefaultModel     = "gpt-4o-mini"
	DefaultMaxTokens = 800

	// DefaultChatCompletionsURL is the direct-mode endpoint used when a
	// credential is configured without an explicit endpoint.
	DefaultChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

	// proxyPrefix marks an endpoint string as proxy mode. The remainder
	// is the proxy path, empty meaning DefaultProxyPath.
	proxyPrefix      = "proxy:"
	DefaultProxyPath = "/api/llm/analyze"
)

// RemoteAnalysisError reports a non-2xx response from the endpoint.
type RemoteAnalysisError struct {
	Status int
	Body   string
}

func (e *RemoteAnalysisError) Error() string {
	return fmt.Sprintf("analyze: remote returned status %d: %s", e.Status, e.Body)
}

// Gateway is a client for one configured analysis endpoint. A zero
// endpoint means remote analysis is unconfigured and Analyze must not be
// called; callers check Configured first.
type Gateway struct {
	client    *http.Client
	log       *slog.Logger
	endpoint  string
	apiKey    string
	model     string
	maxTokens int
}

// Config carries the endpoint wiring. Endpoint is either a full URL for
// direct mode or a "proxy:<path>" string for proxy mode.
type Config struct {
	Endpoint  string
	APIKey    string
	Model     string
	MaxTokens int
	BaseURL   string // origin prepended to the proxy path
}

func NewGateway(cfg Config, client *http.Client, log *slog.Logger) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	endpoint := cfg.Endpoint
	if endpoint == "" && cfg.APIKey != "" {
		// A credential alone selects direct mode, like the original
		// key-driven flow.
		endpoint = DefaultChatCompletionsURL
	}
	if strings.HasPrefix(endpoint, proxyPrefix) {
		path := strings.TrimPrefix(endpoint, proxyPrefix)
		if path == "" {
			path = DefaultProxyPath
		}
		endpoint = proxyPrefix + cfg.BaseURL + path
	}

	return &Gateway{
		client:    client,
		log:       log,
		endpoint:  endpoint,
		apiKey:    cfg.APIKey,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Configured reports whether an endpoint is set.
func (g *Gateway) Configured() bool {
	return g.endpoint != ""
}

// Truncate caps text at MaxAnalysisRunes runes.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxAnalysisRunes {
		return text
	}
	return string(runes[:MaxAnalysisRunes])
}

// Analyze sends the subject's extracted text for remote analysis and
// returns the analysis text. Exactly one attempt is made; failures are
// returned to the caller, which falls back to local analysis.
func (g *Gateway) Analyze(ctx context.Context, subjectName, text string) (string, error) {
	text = Truncate(text)
	if url, ok := strings.CutPrefix(g.endpoint, proxyPrefix); ok {
		return g.analyzeProxy(ctx, url, subjectName, text)
	}
	return g.analyzeDirect(ctx, subjectName, text)
}

type proxyRequest struct {
	Subject   string `json:"subject"`
	Content   string `json:"content"`
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
}

type proxyResponse struct {
	Analysis string `json:"analysis"`
}

func (g *Gateway) analyzeProxy(ctx context.Context, url, subjectName, text string) (string, error) {
	body, err := g.post(ctx, url, proxyRequest{
		Subject:   subjectName,
		Content:   text,
		Model:     g.model,
		MaxTokens: g.maxTokens,
	}, "")
	if err != nil {
		return "", err
	}

	var resp proxyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("analyze: decode proxy response: %w", err)
	}
	if resp.Analysis == "" {
		return "", fmt.Errorf("analyze: proxy response missing analysis")
	}
	return resp.Analysis, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *Gateway) analyzeDirect(ctx context.Context, subjectName, text string) (string, error) {
	prompt := fmt.Sprintf(
		"Analyze the following study material for the subject %q. "+
			"Summarize the key topics and suggest what to review.\n\n%s",
		subjectName, text)

	body, err := g.post(ctx, g.endpoint, chatRequest{
		Model:     g.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: g.maxTokens,
	}, g.apiKey)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err == nil &&
		len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		return resp.Choices[0].Message.Content, nil
	}
	// Non-standard providers return plain text.
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return trimmed, nil
	}
	return "", fmt.Errorf("analyze: empty completion response")
}

func (g *Gateway) post(ctx context.Context, url string, payload any, bearer string) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("analyze: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("analyze: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze: call endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("analyze: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.log.Warn("remote analysis failed", "status", resp.StatusCode)
		return nil, &RemoteAnalysisError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
