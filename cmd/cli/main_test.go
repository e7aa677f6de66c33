package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func withTestServer(t *testing.T, handler http.Handler) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	origURL, origTimeout := baseURL, timeout
	baseURL = server.URL
	timeout = time.Second
	t.Cleanup(func() {
		baseURL = origURL
		timeout = origTimeout
	})
}

func TestGetJSON(t *testing.T) {
	withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/rules" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"keyword":"kpn"}]`))
	}))

	body := getJSON("/api/v1/rules")

	if string(body) != `[{"keyword":"kpn"}]` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestPostJSON(t *testing.T) {
	var received map[string]string
	withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode failed: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"entry-1"}`))
	}))

	body := postJSON("/api/v1/transactions/tx-1/confirm", map[string]string{
		"mode":       "direct",
		"account_id": "acc-telecom",
	})

	if received["account_id"] != "acc-telecom" {
		t.Fatalf("unexpected payload: %+v", received)
	}
	if string(body) != `{"id":"entry-1"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRunBatchOutput(t *testing.T) {
	withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"processed":4,"auto_booked_direct":1,"auto_booked_relation":1,"suggested":1,"needs_review":1,"conflicts":0}`))
	}))

	out := captureOutput(t, runBatch)

	if !strings.Contains(out, "Processed:            4") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Auto-booked direct:   1") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestListRulesOutput(t *testing.T) {
	withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"keyword":"kpn","priority":100,"system":true,"usage_count":7},{"keyword":"bloemist jansen","priority":10,"system":false,"usage_count":2}]`))
	}))

	out := captureOutput(t, listRules)

	if !strings.Contains(out, "system") || !strings.Contains(out, "learned") {
		t.Fatalf("expected rule kinds in output:\n%s", out)
	}
	if !strings.Contains(out, "used=7") {
		t.Fatalf("expected usage count in output:\n%s", out)
	}
}

func TestCheckConsistencyOutput(t *testing.T) {
	withTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_debit":"100","total_credit":"100","consistent":true}`))
	}))

	out := captureOutput(t, checkConsistency)

	if !strings.Contains(out, "PASSED") {
		t.Fatalf("expected passing check, got:\n%s", out)
	}
}
