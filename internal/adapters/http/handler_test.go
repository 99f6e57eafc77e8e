package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rankpilot/rankpilot/internal/adapters/gemini"
	httpadapter "github.com/rankpilot/rankpilot/internal/adapters/http"
	memstore "github.com/rankpilot/rankpilot/internal/adapters/storage/memory"
	"github.com/rankpilot/rankpilot/internal/app/assistant"
	"github.com/rankpilot/rankpilot/internal/app/chat"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	gateway := gemini.NewMock()
	assistantSvc := assistant.NewService(gateway)
	chatSvc := chat.NewService(gateway, memstore.NewConversationStore(), memstore.NewTurnStore())

	return httpadapter.NewServer(assistantSvc, chatSvc)
}

func doJSON(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestKeywords(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/keywords", `{"topic":"coffee beans","use_grounding":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Markdown  string `json:"markdown"`
		Citations []struct {
			URI string `json:"uri"`
		} `json:"citations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Markdown == "" {
		t.Error("expected markdown in response")
	}
	if len(resp.Citations) == 0 {
		t.Error("expected grounded citations from the mock")
	}
}

func TestKeywordsEmptyTopic(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/keywords", `{"topic":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestMetaTagsPreview(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/meta-tags", `{"content":"a page about espresso"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Preview *struct {
			Title string `json:"title"`
		} `json:"preview"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Preview == nil || resp.Preview.Title == "" {
		t.Errorf("expected a SERP preview, body=%s", w.Body.String())
	}
}

func TestCreateImage(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/images", `{"content":"a cozy coffee shop"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		ImageBase64 string `json:"image_base64"`
		MIMEType    string `json:"mime_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.ImageBase64 == "" || resp.MIMEType != "image/png" {
		t.Errorf("unexpected image response: %+v", resp)
	}
}

func TestRefineImageBadBase64(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/images/refine", `{"feedback":"warmer","previous_image_base64":"!!!not-base64!!!"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestNews(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/v1/news", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Items []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Items) == 0 {
		t.Fatal("expected at least one news item")
	}
}

func TestConversationFlow(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/v1/conversations", `{"title":"Test"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var created struct {
		Conversation struct {
			ID string `json:"id"`
		} `json:"conversation"`
		Greeting struct {
			Author string `json:"author"`
		} `json:"greeting"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if created.Conversation.ID == "" || created.Greeting.Author != "agent" {
		t.Fatalf("unexpected create response: %s", w.Body.String())
	}

	w = doJSON(t, srv, http.MethodPost, "/v1/conversations/"+created.Conversation.ID+"/messages", `{"text":"What is a canonical URL?"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, srv, http.MethodGet, "/v1/conversations/"+created.Conversation.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var timeline struct {
		Turns []struct {
			Author string `json:"author"`
		} `json:"turns"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &timeline); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(timeline.Turns) != 3 { // greeting + user + agent
		t.Fatalf("expected 3 turns, got %d", len(timeline.Turns))
	}
}

func TestUnknownConversationIs404(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/v1/conversations/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
