//go:build integration

package providers

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func skipIfOllamaUnavailable(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tags := strings.TrimSuffix(GenerateURL(os.Getenv("OLLAMA_HOST")), "/generate") + "/tags"
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, tags, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Skipf("skipping: ollama not reachable: %v", err)
	}
	resp.Body.Close()
}

func integrationModel() string {
	if m := os.Getenv("BRANCHREVIEW_MODEL"); m != "" {
		return m
	}
	return "llama3.2"
}

func TestIntegration_Ollama_Generate(t *testing.T) {
	skipIfOllamaUnavailable(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	gen, err := New("ollama", integrationModel())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resp, err := gen.Generate(ctx, GenerateRequest{Prompt: "Reply with exactly: HELLO INTEGRATION TEST"})
	if err != nil {
		if IsGenerationError(err) {
			t.Skipf("skipping: model %s not available: %v", integrationModel(), err)
		}
		t.Fatalf("Generate: %v", err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		t.Error("expected non-empty response")
	}
	t.Logf("model=%s eval_count=%d", resp.Model, resp.EvalCount)
}
