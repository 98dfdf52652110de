package huntglitch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// These tests swap the process-wide default client and therefore do not
// run in parallel.

func TestSetDefault(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })

	if Default() != nil {
		t.Fatal("expected no default client initially")
	}

	client := newTestClient(t, "http://example.com")
	SetDefault(client)

	if Default() != client {
		t.Error("expected default client to be installed")
	}

	SetDefault(nil)
	if Default() != nil {
		t.Error("expected default client to be uninstalled")
	}
}

func TestCaptureException_NoDefault(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })
	SetDefault(nil)

	_, err := CaptureException(context.Background(), errors.New("boom"))

	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestSendLog_NoDefault(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })
	SetDefault(nil)

	_, err := SendLog(context.Background(), "msg", LogInfo)

	var confErr *ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestPackageLevelCapture(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })

	var capturedBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	SetDefault(newTestClient(t, server.URL))

	result, err := CaptureException(context.Background(), errors.New("boom"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Error("expected result to be successful")
	}

	var body struct {
		Kind    string `json:"kind"`
		Payload struct {
			Value string `json:"value"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(capturedBody, &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}

	if body.Kind != "exception" {
		t.Errorf("expected kind=exception, got %s", body.Kind)
	}

	if body.Payload.Value != "boom" {
		t.Errorf("expected value=boom, got %s", body.Payload.Value)
	}
}

func TestPackageLevelSendLog(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })

	var capturedBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	SetDefault(newTestClient(t, server.URL))

	if _, err := SendLog(context.Background(), "deploy finished", LogInfo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		Kind    string `json:"kind"`
		Payload struct {
			Value   string `json:"value"`
			LogType string `json:"log_type"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(capturedBody, &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}

	if body.Kind != "log" {
		t.Errorf("expected kind=log, got %s", body.Kind)
	}

	if body.Payload.Value != "deploy finished" {
		t.Errorf("unexpected value: %s", body.Payload.Value)
	}
}
