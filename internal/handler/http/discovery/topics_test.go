package discovery_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"topicscope/internal/handler/http/discovery"
	"topicscope/internal/topics"
)

func newTestTopicsManager(t *testing.T) *topics.Manager {
	t.Helper()
	m, err := topics.Load(filepath.Join(t.TempDir(), "topics.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestToggleTopicHandler_Success(t *testing.T) {
	mgr := newTestTopicsManager(t)
	handler := discovery.ToggleTopicHandler{Topics: mgr}

	body, _ := json.Marshal(discovery.ToggleTopicRequest{Topic: "Technology", Status: true})
	req := httptest.NewRequest(http.MethodPost, "/topics/toggle", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if !mgr.GetAll()["Technology"] {
		t.Error("expected Technology to be active after toggle")
	}
}

func TestToggleTopicHandler_MissingTopic(t *testing.T) {
	mgr := newTestTopicsManager(t)
	handler := discovery.ToggleTopicHandler{Topics: mgr}

	body, _ := json.Marshal(discovery.ToggleTopicRequest{Status: true})
	req := httptest.NewRequest(http.MethodPost, "/topics/toggle", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestToggleTopicHandler_BadJSON(t *testing.T) {
	mgr := newTestTopicsManager(t)
	handler := discovery.ToggleTopicHandler{Topics: mgr}

	req := httptest.NewRequest(http.MethodPost, "/topics/toggle", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestActiveKeywordsHandler(t *testing.T) {
	mgr := newTestTopicsManager(t)
	handler := discovery.ActiveKeywordsHandler{Topics: mgr}

	req := httptest.NewRequest(http.MethodGet, "/topics/active", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var got []string
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) == 0 {
		t.Error("expected at least one default active topic")
	}
}
