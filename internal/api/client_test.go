package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/studiowebux/redditmood/internal/types"
)

const successBody = `{
	"post_title": "Test Post",
	"overall_sentiment": "positive",
	"groups": [
		{"label": "positive", "count": 8, "proportion": 0.8},
		{"label": "negative", "count": 2, "proportion": 0.2}
	],
	"controversy": 0.35,
	"keywords": ["great", "useful"],
	"notable_comments": [
		{"comment_id": "c1", "snippet": "Loved it", "sentiment": "positive", "score": 42}
	]
}`

func TestAnalyze_Success(t *testing.T) {
	var requestCount int
	var gotMethod, gotPath, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(successBody))
	}))
	defer server.Close()

	client := New(server.URL)
	result, err := client.Analyze(context.Background(), "https://reddit.com/r/test/comments/abc123/title")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if requestCount != 1 {
		t.Errorf("expected exactly 1 request, got %d", requestCount)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotPath != "/analyze" {
		t.Errorf("expected /analyze path, got %s", gotPath)
	}

	var payload types.AnalysisRequest
	if err := json.Unmarshal([]byte(gotBody), &payload); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	if payload.URL != "https://reddit.com/r/test/comments/abc123/title" {
		t.Errorf("unexpected request url: %s", payload.URL)
	}

	if result.PostTitle != "Test Post" {
		t.Errorf("PostTitle = %q, want %q", result.PostTitle, "Test Post")
	}
	if result.OverallSentiment != types.SentimentPositive {
		t.Errorf("OverallSentiment = %q, want positive", result.OverallSentiment)
	}
	if len(result.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(result.Groups))
	}
	if result.Groups[0].Count != 8 || result.Groups[0].Proportion != 0.8 {
		t.Errorf("unexpected first group: %+v", result.Groups[0])
	}
	if result.Controversy != 0.35 {
		t.Errorf("Controversy = %v, want 0.35", result.Controversy)
	}
	if len(result.Keywords) != 2 || result.Keywords[0] != "great" {
		t.Errorf("unexpected keywords: %v", result.Keywords)
	}
	if len(result.NotableComments) != 1 || result.NotableComments[0].Score != 42 {
		t.Errorf("unexpected notable comments: %+v", result.NotableComments)
	}
	if result.TotalComments() != 10 {
		t.Errorf("TotalComments = %d, want 10", result.TotalComments())
	}
}

func TestAnalyze_IgnoresUnknownFields(t *testing.T) {
	body := `{
		"post_title": "T",
		"overall_sentiment": "neutral",
		"groups": [{"label": "neutral", "count": 1, "proportion": 1.0}],
		"controversy": 0,
		"keywords": [],
		"notable_comments": [],
		"some_future_field": {"nested": true}
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	result, err := New(server.URL).Analyze(context.Background(), "https://reddit.com/r/x/comments/1/t")
	if err != nil {
		t.Fatalf("Analyze failed on extra fields: %v", err)
	}
	if result.OverallSentiment != types.SentimentNeutral {
		t.Errorf("OverallSentiment = %q, want neutral", result.OverallSentiment)
	}
}

func TestAnalyze_BackendErrorWithDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "Invalid Reddit URL"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).Analyze(context.Background(), "not-a-url")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if reqErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d, want 422", reqErr.Status)
	}
	if reqErr.Message() != "Invalid Reddit URL" {
		t.Errorf("Message = %q, want %q", reqErr.Message(), "Invalid Reddit URL")
	}
	if UserMessage(err) != "Invalid Reddit URL" {
		t.Errorf("UserMessage = %q, want %q", UserMessage(err), "Invalid Reddit URL")
	}
}

func TestAnalyze_BackendErrorMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	_, err := New(server.URL).Analyze(context.Background(), "https://reddit.com/r/x/comments/1/t")

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if !strings.Contains(reqErr.Message(), "500") {
		t.Errorf("fallback message should include the status code, got %q", reqErr.Message())
	}
}

func TestAnalyze_MalformedSuccessBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing overall_sentiment",
			body: `{"post_title": "T", "groups": [], "controversy": 0, "keywords": [], "notable_comments": []}`,
		},
		{
			name: "wrong enum value",
			body: `{"post_title": "T", "overall_sentiment": "ecstatic", "groups": [], "controversy": 0, "keywords": [], "notable_comments": []}`,
		},
		{
			name: "non-numeric count",
			body: `{"post_title": "T", "overall_sentiment": "neutral", "groups": [{"label": "neutral", "count": "many", "proportion": 1.0}], "controversy": 0, "keywords": [], "notable_comments": []}`,
		},
		{
			name: "not json at all",
			body: `hello`,
		},
		{
			name: "proportions do not sum to one",
			body: `{"post_title": "T", "overall_sentiment": "neutral", "groups": [{"label": "neutral", "count": 2, "proportion": 0.5}], "controversy": 0, "keywords": [], "notable_comments": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := New(server.URL).Analyze(context.Background(), "https://reddit.com/r/x/comments/1/t")
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T (%v)", err, err)
			}
			if UserMessage(err) == "" {
				t.Error("expected a non-empty user message")
			}
		})
	}
}

func TestAnalyze_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Closed before the call: connection refused.

	_, err := New(server.URL).Analyze(context.Background(), "https://reddit.com/r/x/comments/1/t")

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T", err)
	}
	if transportErr.Message() == "" {
		t.Error("expected a non-empty user message")
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("expected /health path, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	if err := New(server.URL).Health(context.Background()); err != nil {
		t.Errorf("Health failed: %v", err)
	}
}

func TestHealth_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	if err := New(server.URL).Health(context.Background()); err == nil {
		t.Error("expected error for unreachable service")
	}
}
