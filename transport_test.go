package welstory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseOK(t *testing.T) {
	testCases := []struct {
		statusCode int
		ok         bool
	}{
		{199, false},
		{200, true},
		{204, true},
		{299, true},
		{300, false},
		{404, false},
		{500, false},
	}

	for _, tc := range testCases {
		resp := newResponse(tc.statusCode, "", nil, nil)
		if resp.OK() != tc.ok {
			t.Errorf("OK() for status %d = %v, want %v", tc.statusCode, resp.OK(), tc.ok)
		}
	}
}

func TestResponseHeaderCaseInsensitive(t *testing.T) {
	header := http.Header{}
	header.Set("Authorization", "token-value")
	resp := newResponse(200, "OK", header, nil)

	for _, name := range []string{"Authorization", "authorization", "AUTHORIZATION", "AuThOrIzAtIoN"} {
		if got := resp.Header(name); got != "token-value" {
			t.Errorf("Header(%q) = %q, want token-value", name, got)
		}
	}
	if got := resp.Header("X-Missing"); got != "" {
		t.Errorf("Header(X-Missing) = %q, want empty", got)
	}
}

func TestResponseJSON(t *testing.T) {
	resp := newResponse(200, "OK", nil, []byte(`{"key":"value"}`))

	var parsed map[string]interface{}
	if err := resp.JSON(&parsed); err != nil {
		t.Fatalf("JSON() returned error: %v", err)
	}
	if parsed["key"] != "value" {
		t.Errorf("Expected key=value, got %v", parsed["key"])
	}
}

func TestResponseJSONInvalid(t *testing.T) {
	resp := newResponse(200, "OK", nil, []byte("not json"))

	var parsed map[string]interface{}
	err := resp.JSON(&parsed)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !errors.Is(err, &ClientError{Type: ErrorTypeParse}) {
		t.Errorf("Expected Parse error, got %v", err)
	}
	if resp.Text() != "not json" {
		t.Errorf("Text() = %q, want raw body", resp.Text())
	}
}

func TestHTTPTransportSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST method, got %s", r.Method)
		}
		if r.Header.Get("X-Custom") != "yes" {
			t.Errorf("Expected X-Custom header, got %q", r.Header.Get("X-Custom"))
		}
		w.Header().Set("X-Answer", "42")
		w.WriteHeader(http.StatusCreated)
		if _, err := w.Write([]byte(`{"ok":true}`)); err != nil {
			t.Fatalf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	transport := NewHTTPTransport(nil)
	resp, err := transport.Send(context.Background(), server.URL, RequestOptions{
		Method:  "POST",
		Headers: map[string]string{"X-Custom": "yes"},
		Body:    []byte("payload"),
	})
	if err != nil {
		t.Fatalf("Send() returned error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", resp.StatusCode)
	}
	if !resp.OK() {
		t.Error("Expected OK() to be true for 201")
	}
	if resp.Header("x-answer") != "42" {
		t.Errorf("Expected X-Answer=42, got %q", resp.Header("x-answer"))
	}
	if resp.Text() != `{"ok":true}` {
		t.Errorf("Unexpected body %q", resp.Text())
	}
}

func TestHTTPTransportConnectionFailure(t *testing.T) {
	transport := NewHTTPTransport(nil)
	_, err := transport.Send(context.Background(), "http://127.0.0.1:1", RequestOptions{})
	if err == nil {
		t.Fatal("Expected error for unreachable server")
	}
	if !errors.Is(err, &ClientError{Type: ErrorTypeTransport}) {
		t.Errorf("Expected Transport error, got %v", err)
	}
}

func TestSocketTransportSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected GET method, got %s", r.Method)
		}
		if r.Header.Get("X-Device-Id") != "socket-device" {
			t.Errorf("Expected X-Device-Id header, got %q", r.Header.Get("X-Device-Id"))
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"via":"socket"}`)); err != nil {
			t.Fatalf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	transport := NewSocketTransport()
	resp, err := transport.Send(context.Background(), server.URL+"/path?q=1", RequestOptions{
		Headers: map[string]string{"X-Device-Id": "socket-device"},
	})
	if err != nil {
		t.Fatalf("Send() returned error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if resp.Header("content-type") != "application/json" {
		t.Errorf("Unexpected Content-Type %q", resp.Header("content-type"))
	}

	var parsed map[string]interface{}
	if err := resp.JSON(&parsed); err != nil {
		t.Fatalf("JSON() returned error: %v", err)
	}
	if parsed["via"] != "socket" {
		t.Errorf("Expected via=socket, got %v", parsed["via"])
	}
}

func TestSocketTransportPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength != 7 {
			t.Errorf("Expected Content-Length 7, got %d", r.ContentLength)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	transport := NewSocketTransport()
	resp, err := transport.Send(context.Background(), server.URL, RequestOptions{
		Method: "POST",
		Body:   []byte("payload"),
	})
	if err != nil {
		t.Fatalf("Send() returned error: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", resp.StatusCode)
	}
}

func TestSocketTransportUnsupportedScheme(t *testing.T) {
	transport := NewSocketTransport()
	_, err := transport.Send(context.Background(), "ftp://example.com", RequestOptions{})
	if err == nil {
		t.Fatal("Expected error for unsupported scheme")
	}
}

func TestDefaultTransportResolvesOnce(t *testing.T) {
	first := DefaultTransport()
	if first == nil {
		t.Fatal("Expected DefaultTransport() to resolve a strategy")
	}
	if second := DefaultTransport(); second != first {
		t.Error("Expected the same Transport for the process lifetime")
	}
}

func TestParseStatusLine(t *testing.T) {
	code, text, err := parseStatusLine("HTTP/1.1 404 Not Found\r\n")
	if err != nil {
		t.Fatalf("parseStatusLine returned error: %v", err)
	}
	if code != 404 || text != "Not Found" {
		t.Errorf("parseStatusLine = %d %q, want 404 Not Found", code, text)
	}

	if _, _, err := parseStatusLine("garbage\r\n"); err == nil {
		t.Error("Expected error for malformed status line")
	}
}
