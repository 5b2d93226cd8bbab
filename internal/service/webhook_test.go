package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

func TestWebhookSendReport(t *testing.T) {
	var received model.WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	file := []byte("conteudo-xlsx")
	err := NewWebhookService().SendReport(context.Background(), server.URL, "reunioes_2025.xlsx", file, 12, 3450.5)
	if err != nil {
		t.Fatalf("SendReport: %v", err)
	}

	if !received.Success {
		t.Error("payload should be marked successful")
	}
	if received.TotalMeetings != 12 || received.TotalCost != 3450.5 {
		t.Errorf("unexpected aggregates: %+v", received)
	}
	if received.FileName != "reunioes_2025.xlsx" {
		t.Errorf("unexpected file name: %q", received.FileName)
	}

	decoded, err := base64.StdEncoding.DecodeString(received.FileBase64)
	if err != nil {
		t.Fatalf("decode file: %v", err)
	}
	if string(decoded) != string(file) {
		t.Error("file content does not round-trip")
	}
}

func TestWebhookSendError(t *testing.T) {
	var received model.WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := NewWebhookService().SendError(context.Background(), server.URL, errors.New("feed expirou"))
	if err != nil {
		t.Fatalf("SendError: %v", err)
	}

	if received.Success {
		t.Error("error payload should not be marked successful")
	}
	if received.Error != "feed expirou" {
		t.Errorf("unexpected error message: %q", received.Error)
	}
}

func TestWebhookRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := NewWebhookService().SendError(context.Background(), server.URL, errors.New("x"))
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}
