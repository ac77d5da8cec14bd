package optimize

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newWebhookRouter(t *testing.T, h *Handler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterWebhookRoutes(r.Group("/api/v1"))
	return r
}

func postWebhook(t *testing.T, r *gin.Engine, secret string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/optimize", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(WebhookSecretHeader, secret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookRejectsMissingOrWrongSecret(t *testing.T) {
	client := &fakeClient{calls: make(chan Request, 1)}
	svc, _, rsvc, doc := newTestService(t, client)
	r := newWebhookRouter(t, NewHandler(svc, "s3cret"))
	ctx := context.Background()

	if err := svc.Start(ctx, doc.OwnerID, doc.ID, "Backend Engineer"); err != nil {
		t.Fatalf("start: %v", err)
	}
	<-client.calls

	payload := gin.H{"resumeId": doc.ID, "summary": "Injected."}

	if w := postWebhook(t, r, "", payload); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing secret: status %d, want 401", w.Code)
	}
	if w := postWebhook(t, r, "wrong", payload); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: status %d, want 401", w.Code)
	}

	// The rejected delivery resolved nothing.
	if !svc.Pending(doc.ID) {
		t.Fatal("job resolved by unauthenticated delivery")
	}
	stored, err := rsvc.Get(ctx, doc.OwnerID, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.PersonalInfo.Summary == "Injected." {
		t.Fatal("unauthenticated delivery modified the document")
	}
}

func TestWebhookAcceptsMatchingSecret(t *testing.T) {
	client := &fakeClient{calls: make(chan Request, 1)}
	svc, _, rsvc, doc := newTestService(t, client)
	r := newWebhookRouter(t, NewHandler(svc, "s3cret"))
	ctx := context.Background()

	if err := svc.Start(ctx, doc.OwnerID, doc.ID, "Backend Engineer"); err != nil {
		t.Fatalf("start: %v", err)
	}
	<-client.calls

	w := postWebhook(t, r, "s3cret", gin.H{"resumeId": doc.ID, "summary": "Delivered."})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", w.Code, w.Body.String())
	}
	stored, err := rsvc.Get(ctx, doc.OwnerID, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.PersonalInfo.Summary != "Delivered." {
		t.Fatalf("result not applied: %q", stored.PersonalInfo.Summary)
	}
}

func TestWebhookOpenWhenSecretUnconfigured(t *testing.T) {
	client := &fakeClient{calls: make(chan Request, 1)}
	svc, _, _, doc := newTestService(t, client)
	r := newWebhookRouter(t, NewHandler(svc, ""))

	if err := svc.Start(context.Background(), doc.OwnerID, doc.ID, "Backend Engineer"); err != nil {
		t.Fatalf("start: %v", err)
	}
	<-client.calls

	w := postWebhook(t, r, "", gin.H{"resumeId": doc.ID, "summary": "Dev delivery."})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", w.Code, w.Body.String())
	}
}
