package discovery_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"topicscope/internal/handler/http/discovery"
	"topicscope/internal/legal"
)

func TestLegalAskHandler_EmptyQuery(t *testing.T) {
	asker := legal.New(nil, nil, nil)
	handler := discovery.LegalAskHandler{Asker: asker}

	req := httptest.NewRequest(http.MethodPost, "/legal/ask", bytes.NewReader([]byte(`{"query":"  ","lang":"en"}`)))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestLegalAskHandler_BadJSON(t *testing.T) {
	asker := legal.New(nil, nil, nil)
	handler := discovery.LegalAskHandler{Asker: asker}

	req := httptest.NewRequest(http.MethodPost, "/legal/ask", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
