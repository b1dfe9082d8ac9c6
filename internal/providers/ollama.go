package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const defaultOllamaHost = "http://localhost:11434"

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	EvalCount int    `json:"eval_count"`
}

// Ollama implements the Generator interface against Ollama's native
// /api/generate endpoint.
type Ollama struct {
	model   string
	baseURL string
	client  *http.Client
}

// NewOllama creates a new Ollama generator. The host is taken from OLLAMA_HOST
// and defaults to a local server.
func NewOllama(model string) (*Ollama, error) {
	if model == "" {
		return nil, fmt.Errorf("ollama: model name is required")
	}
	return &Ollama{
		model:   model,
		baseURL: GenerateURL(os.Getenv("OLLAMA_HOST")),
		// No timeout; only the caller's context bounds the request.
		client: &http.Client{},
	}, nil
}

// GenerateURL normalizes an Ollama host into the full /api/generate URL.
func GenerateURL(host string) string {
	if host == "" {
		host = defaultOllamaHost
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	host = strings.TrimRight(host, "/")
	host = strings.TrimSuffix(host, "/api/generate")
	host = strings.TrimSuffix(host, "/api")
	return host + "/api/generate"
}

func (o *Ollama) Name() string { return "ollama" }

// Model returns the model identifier sent with every request.
func (o *Ollama) Model() string { return o.model }

func (o *Ollama) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	payload, err := json.Marshal(ollamaRequest{
		Model:  o.model,
		Prompt: req.Prompt,
		Stream: false,
	})
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return GenerateResponse{}, &TransportError{Op: "creating request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return GenerateResponse{}, &TransportError{Op: "sending request", Err: err}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return GenerateResponse{}, &TransportError{Op: "reading response", Err: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return GenerateResponse{}, &GenerationError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var result ollamaResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return GenerateResponse{}, &TransportError{Op: "parsing response", Err: err}
	}

	return GenerateResponse{
		Text:      result.Response,
		Model:     result.Model,
		EvalCount: result.EvalCount,
	}, nil
}
