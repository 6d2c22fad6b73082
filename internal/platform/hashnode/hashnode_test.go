// ABOUTME: Tests for the Hashnode adapter against a fake GraphQL endpoint.
// ABOUTME: Verifies step ordering, early aborts, error envelopes, and token validation.
package hashnode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/2389-research/blogpub/internal/models"
	"github.com/2389-research/blogpub/internal/platform"
)

// fakeHashnode answers GraphQL operations with canned bodies and records call order.
type fakeHashnode struct {
	mu        sync.Mutex
	calls     []string
	auth      []string
	variables []map[string]any

	me          string
	publication string
	createDraft string
	publish     string
}

func newFakeHashnode() *fakeHashnode {
	return &fakeHashnode{
		me:          `{"data":{"me":{"id":"user-1"}}}`,
		publication: `{"data":{"me":{"publications":{"edges":[{"node":{"id":"pub-1"}}]}}}}`,
		createDraft: `{"data":{"createDraft":{"draft":{"id":"draft-1"}}}}`,
		publish:     `{"data":{"publishDraft":{"post":{"id":"post-1","title":"Hello","slug":"hello","url":"https://me.hashnode.dev/hello","publishedAt":"2026-10-19T10:00:00.000Z"}}}}`,
	}
}

func (f *fakeHashnode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	var op, body string
	switch {
	case strings.Contains(req.Query, "createDraft"):
		op, body = "createDraft", f.createDraft
	case strings.Contains(req.Query, "publishDraft"):
		op, body = "publishDraft", f.publish
	case strings.Contains(req.Query, "publications"):
		op, body = "publication", f.publication
	default:
		op, body = "me", f.me
	}

	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	f.variables = append(f.variables, req.Variables)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeHashnode) callList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newTestAdapter(t *testing.T, f *fakeHashnode) *Adapter {
	t.Helper()
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)
	return New(NewClient(server.URL, server.Client()))
}

func TestPublishPostRunsStepsInOrder(t *testing.T) {
	f := newFakeHashnode()
	a := newTestAdapter(t, f)

	result, err := a.PublishPost(context.Background(), "hn-token", models.PostInput{Title: "Hello", ContentMarkdown: "body"})
	if err != nil {
		t.Fatalf("PublishPost error: %v", err)
	}

	calls := f.callList()
	want := []string{"publication", "createDraft", "publishDraft"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	for i, auth := range f.auth {
		if auth != "hn-token" {
			t.Errorf("call %d: expected Authorization hn-token, got %q", i, auth)
		}
	}

	input, _ := f.variables[1]["input"].(map[string]any)
	if input["publicationId"] != "pub-1" || input["title"] != "Hello" || input["contentMarkdown"] != "body" {
		t.Errorf("unexpected createDraft input: %v", input)
	}
	publishInput, _ := f.variables[2]["input"].(map[string]any)
	if publishInput["draftId"] != "draft-1" {
		t.Errorf("expected draftId draft-1, got %v", publishInput["draftId"])
	}

	want2 := models.PublishResult{
		ID:          "post-1",
		Title:       "Hello",
		Slug:        "hello",
		URL:         "https://me.hashnode.dev/hello",
		PublishedAt: "2026-10-19T10:00:00.000Z",
	}
	if *result != want2 {
		t.Errorf("result = %+v, want %+v", *result, want2)
	}
}

func TestPublishPostNoPublicationStopsAtStepOne(t *testing.T) {
	f := newFakeHashnode()
	f.publication = `{"data":{"me":{"publications":{"edges":[]}}}}`
	a := newTestAdapter(t, f)

	_, err := a.PublishPost(context.Background(), "hn-token", models.PostInput{Title: "x"})
	if err == nil {
		t.Fatal("expected error when no publication exists")
	}
	if !errors.Is(err, platform.ErrNoPublicationFound) {
		t.Errorf("expected ErrNoPublicationFound, got %v", err)
	}
	if !errors.Is(err, platform.ErrPublishFailed) {
		t.Errorf("expected ErrPublishFailed, got %v", err)
	}
	if calls := f.callList(); len(calls) != 1 {
		t.Errorf("expected only the publication lookup, got %v", calls)
	}
}

func TestPublishPostStepOneErrorEnvelope(t *testing.T) {
	f := newFakeHashnode()
	f.publication = `{"errors":[{"message":"Invalid access token"}],"data":null}`
	a := newTestAdapter(t, f)

	_, err := a.PublishPost(context.Background(), "bad", models.PostInput{Title: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Invalid access token") {
		t.Errorf("expected upstream message, got: %s", err)
	}
	if errors.Is(err, platform.ErrNoPublicationFound) {
		t.Error("an API error must not be reported as a missing publication")
	}
	if calls := f.callList(); len(calls) != 1 {
		t.Errorf("expected one call, got %v", calls)
	}
}

func TestPublishPostCreateDraftFailureSkipsPublish(t *testing.T) {
	f := newFakeHashnode()
	f.createDraft = `{"errors":[{"message":"Title is too long"}],"data":null}`
	a := newTestAdapter(t, f)

	_, err := a.PublishPost(context.Background(), "hn-token", models.PostInput{Title: "x"})
	if err == nil {
		t.Fatal("expected error")
	}

	var pubErr *platform.PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("expected *platform.PublishError, got %T", err)
	}
	if pubErr.Step != StepCreateDraft {
		t.Errorf("expected step %q, got %q", StepCreateDraft, pubErr.Step)
	}
	if err.Error() != "Hashnode createDraft failed: Title is too long" {
		t.Errorf("unexpected message: %s", err)
	}

	calls := f.callList()
	if strings.Join(calls, ",") != "publication,createDraft" {
		t.Errorf("expected publishDraft to be skipped, got %v", calls)
	}
}

func TestPublishPostCreateDraftMissingID(t *testing.T) {
	f := newFakeHashnode()
	f.createDraft = `{"data":{"createDraft":{"draft":null}}}`
	a := newTestAdapter(t, f)

	_, err := a.PublishPost(context.Background(), "hn-token", models.PostInput{Title: "x"})
	if err == nil {
		t.Fatal("expected error for missing draft id")
	}
	if calls := f.callList(); len(calls) != 2 {
		t.Errorf("expected publishDraft to be skipped, got %v", calls)
	}
}

func TestPublishPostPublishDraftFailure(t *testing.T) {
	f := newFakeHashnode()
	f.publish = `{"errors":[{"message":"Draft not found"}]}`
	a := newTestAdapter(t, f)

	_, err := a.PublishPost(context.Background(), "hn-token", models.PostInput{Title: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "publishDraft") || !strings.Contains(err.Error(), "Draft not found") {
		t.Errorf("expected step and upstream message, got: %s", err)
	}
}

func TestPublishPostHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	a := New(NewClient(server.URL, server.Client()))
	_, err := a.PublishPost(context.Background(), "t", models.PostInput{Title: "x"})
	if err == nil {
		t.Fatal("expected error for 502")
	}
	var pubErr *platform.PublishError
	if !errors.As(err, &pubErr) || pubErr.Status != http.StatusBadGateway {
		t.Fatalf("expected PublishError with status 502, got %v", err)
	}
	if !strings.Contains(err.Error(), "upstream down") {
		t.Errorf("expected body in message, got: %s", err)
	}
}

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name string
		me   string
		want bool
	}{
		{"valid", `{"data":{"me":{"id":"user-1"}}}`, true},
		{"null me", `{"data":{"me":null}}`, false},
		{"empty id", `{"data":{"me":{"id":""}}}`, false},
		{"error envelope", `{"errors":[{"message":"Unauthenticated"}]}`, false},
		{"garbage", `<html>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeHashnode()
			f.me = tt.me
			a := newTestAdapter(t, f)
			if got := a.ValidateToken(context.Background(), "hn-token"); got != tt.want {
				t.Errorf("ValidateToken() = %v, want %v", got, tt.want)
			}
			if calls := f.callList(); len(calls) != 1 || calls[0] != "me" {
				t.Errorf("expected a single identity query, got %v", calls)
			}
		})
	}
}

func TestValidateTokenUnreachable(t *testing.T) {
	a := New(NewClient("http://localhost:1", nil))
	if a.ValidateToken(context.Background(), "t") {
		t.Error("expected false for unreachable endpoint")
	}
}
