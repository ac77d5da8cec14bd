package optimize

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseResultJSON(t *testing.T) {
	body := []byte(`{"summary":"Rewritten.","experienceDescriptions":["Did A","Did B"]}`)
	res := ParseResult(body)
	if res.Summary == nil || *res.Summary != "Rewritten." {
		t.Fatalf("summary not parsed: %+v", res)
	}
	if res.ExperienceDescriptions == nil || len(*res.ExperienceDescriptions) != 2 {
		t.Fatalf("experience descriptions not parsed: %+v", res)
	}
	if res.EducationDescriptions != nil {
		t.Fatal("absent field should stay nil")
	}
}

func TestParseResultPlainTextFallsBackToSummary(t *testing.T) {
	res := ParseResult([]byte("A concise professional summary."))
	if res.Summary == nil || *res.Summary != "A concise professional summary." {
		t.Fatalf("plain text not treated as summary: %+v", res)
	}
	if res.EducationDescriptions != nil || res.ExperienceDescriptions != nil {
		t.Fatal("plain text fallback must only touch the summary")
	}
}

func TestParseResultEmptyBody(t *testing.T) {
	res := ParseResult([]byte("  \n"))
	if res.Summary != nil || res.EducationDescriptions != nil || res.ExperienceDescriptions != nil {
		t.Fatalf("empty body should be a no-op result: %+v", res)
	}
}

func TestHTTPClientInlineResponse(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary":"Better."}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	res, err := client.Optimize(context.Background(), Request{
		ResumeID:  "r1",
		Summary:   "Old.",
		TargetJob: "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if res == nil || res.Summary == nil || *res.Summary != "Better." {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got.ResumeID != "r1" || got.TargetJob != "Backend Engineer" {
		t.Fatalf("request payload wrong: %+v", got)
	}
}

func TestHTTPClientAcceptedMeansAsync(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	res, err := client.Optimize(context.Background(), Request{ResumeID: "r1"})
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if res != nil {
		t.Fatalf("202 must return a nil result, got %+v", res)
	}
}

func TestHTTPClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.Optimize(context.Background(), Request{ResumeID: "r1"}); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestNewHTTPClientRequiresURL(t *testing.T) {
	if _, err := NewHTTPClient("  "); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}
