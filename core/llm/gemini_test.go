package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiComplete(t *testing.T) {
	var got geminiRequest
	var path, key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"<h1>A</h1>"},{"text":"<p>B</p>"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("g-key", "").WithBaseURL(srv.URL)
	req := &CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "be elegant"},
			{Role: RoleUser, Content: "content"},
		},
		Temperature: 0.3,
	}
	resp, err := p.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if resp.Content != "<h1>A</h1><p>B</p>" {
		t.Errorf("Content = %q", resp.Content)
	}
	if path != "/models/gemini-2.5-flash-preview-09-2025:generateContent" {
		t.Errorf("path = %q", path)
	}
	if key != "g-key" {
		t.Errorf("key = %q", key)
	}
	if got.SystemInstruction == nil || got.SystemInstruction.Parts[0].Text != "be elegant" {
		t.Errorf("systemInstruction = %+v", got.SystemInstruction)
	}
	if len(got.Contents) != 1 || got.Contents[0].Role != "user" {
		t.Errorf("contents = %+v", got.Contents)
	}
	if got.GenerationConfig.Temperature != 0.3 {
		t.Errorf("temperature = %v", got.GenerationConfig.Temperature)
	}
}

func TestGeminiErrorKeepsProviderMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted (e.g. check quota)."}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiProvider("k", "").WithBaseURL(srv.URL).Complete(context.Background(), NewRequest("", "x", 0.3))
	if err == nil {
		t.Fatal("Complete() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "Resource has been exhausted") {
		t.Errorf("error = %q", err)
	}
}

func TestGeminiEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	resp, err := NewGeminiProvider("k", "").WithBaseURL(srv.URL).Complete(context.Background(), NewRequest("", "x", 0.3))
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if resp.Content != "" {
		t.Errorf("Content = %q, want empty", resp.Content)
	}
}
