package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAICompatibleComplete(t *testing.T) {
	var got openAIRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"deepseek-chat","choices":[{"message":{"role":"assistant","content":"<h1>Ok</h1>"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	p := NewDeepSeekProvider("sk-test", "").WithBaseURL(srv.URL)
	resp, err := p.Complete(context.Background(), NewRequest("", "prompt body", 0.3))
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if resp.Content != "<h1>Ok</h1>" {
		t.Errorf("Content = %q", resp.Content)
	}
	if auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", auth)
	}
	if got.Model != "deepseek-chat" {
		t.Errorf("model = %q, want deepseek-chat", got.Model)
	}
	if got.Temperature != 0.3 {
		t.Errorf("temperature = %v, want 0.3", got.Temperature)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "prompt body" {
		t.Errorf("messages = %+v", got.Messages)
	}
	if got.Stream {
		t.Error("stream = true, want false")
	}
}

func TestOpenAICompatibleErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"structured", http.StatusPaymentRequired, `{"error":{"message":"Insufficient Balance"}}`, "Insufficient Balance"},
		{"raw body", http.StatusBadGateway, `upstream down`, "status 502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewOpenAIProvider("k", "").WithBaseURL(srv.URL)
			_, err := p.Complete(context.Background(), NewRequest("", "x", 0.3))
			if err == nil {
				t.Fatal("Complete() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestOpenAIPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewOpenAIProvider("good", "").WithBaseURL(srv.URL).Ping(context.Background()); err != nil {
		t.Errorf("Ping() with good key: %v", err)
	}
	if err := NewOpenAIProvider("bad", "").WithBaseURL(srv.URL).Ping(context.Background()); err == nil {
		t.Error("Ping() with bad key succeeded")
	}
}

func TestOpenRouterHeaders(t *testing.T) {
	var title string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.Header.Get("X-Title")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"x"}}]}`))
	}))
	defer srv.Close()

	if _, err := NewOpenRouterProvider("k", "").WithBaseURL(srv.URL).Complete(context.Background(), NewRequest("", "x", 0)); err != nil {
		t.Fatal(err)
	}
	if title != "LuxeScript" {
		t.Errorf("X-Title = %q", title)
	}
}
