package cli

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const mockSuccessBody = `{
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

func mockServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mockSuccessBody))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRun_TextOutput(t *testing.T) {
	server := mockServer(t)

	var out strings.Builder
	err := Run(RunOptions{
		URL:       "https://reddit.com/r/test/comments/abc123/title",
		Endpoint:  server.URL,
		NoHistory: true,
		Out:       &out,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Test Post", "POSITIVE", "10 comments", "Controversy: 0.35", "great, useful", "Loved it"} {
		if !strings.Contains(got, want) {
			t.Errorf("text output missing %q:\n%s", want, got)
		}
	}
}

func TestRun_JSONOutput(t *testing.T) {
	server := mockServer(t)

	var out strings.Builder
	err := Run(RunOptions{
		URL:          "https://reddit.com/r/test/comments/abc123/title",
		Endpoint:     server.URL,
		OutputFormat: "json",
		NoHistory:    true,
		Out:          &out,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(out.String(), `"overall_sentiment": "positive"`) {
		t.Errorf("json output missing sentiment field:\n%s", out.String())
	}
}

func TestRun_YAMLOutput(t *testing.T) {
	server := mockServer(t)

	var out strings.Builder
	err := Run(RunOptions{
		URL:          "https://reddit.com/r/test/comments/abc123/title",
		Endpoint:     server.URL,
		OutputFormat: "yaml",
		NoHistory:    true,
		Out:          &out,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(out.String(), "overall_sentiment: positive") {
		t.Errorf("yaml output missing sentiment field:\n%s", out.String())
	}
}

func TestRun_Query(t *testing.T) {
	server := mockServer(t)

	var out strings.Builder
	err := Run(RunOptions{
		URL:       "https://reddit.com/r/test/comments/abc123/title",
		Endpoint:  server.URL,
		Query:     "groups[?label=='positive'].count | [0]",
		NoHistory: true,
		Out:       &out,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if strings.TrimSpace(out.String()) != "8" {
		t.Errorf("query output = %q, want 8", out.String())
	}
}

func TestRun_BlankURL(t *testing.T) {
	err := Run(RunOptions{URL: "   ", NoHistory: true, Out: &strings.Builder{}})
	if err == nil {
		t.Fatal("expected an error for blank URL")
	}
	if !strings.Contains(err.Error(), "please enter a Reddit URL") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_BackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "Invalid Reddit URL"}`))
	}))
	defer server.Close()

	err := Run(RunOptions{
		URL:       "https://example.com/not-reddit",
		Endpoint:  server.URL,
		NoHistory: true,
		Out:       &strings.Builder{},
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Error() != "Invalid Reddit URL" {
		t.Errorf("error = %q, want backend detail", err.Error())
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	server := mockServer(t)

	err := Run(RunOptions{
		URL:          "https://reddit.com/r/test/comments/abc123/title",
		Endpoint:     server.URL,
		OutputFormat: "xml",
		NoHistory:    true,
		Out:          &strings.Builder{},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("expected unknown format error, got %v", err)
	}
}
