package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/life-index/backend/internal/application/adapter"
	domainerror "github.com/life-index/backend/internal/domain/error"
)

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "unauthorized", err: errors.New("[ERROR]: 401 Unauthorized"), expected: true},
		{name: "forbidden", err: errors.New("Forbidden"), expected: true},
		{name: "validation", err: errors.New("422: validation_error"), expected: true},
		{name: "invalid address", err: errors.New("Invalid `to` field"), expected: true},
		{name: "rate limit", err: errors.New("429 Too Many Requests"), expected: false},
		{name: "server error", err: errors.New("500 Internal Server Error"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPermanentError(tt.err); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMockEmailSender(t *testing.T) {
	sender := NewMockEmailSender()
	ctx := context.Background()

	result, err := sender.Send(ctx, adapter.SendEmailInput{To: "me@example.com", Subject: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MessageID != "mock-1" {
		t.Errorf("expected mock-1, got %s", result.MessageID)
	}

	sender.SetFailure(errors.New("down"), false)
	_, err = sender.Send(ctx, adapter.SendEmailInput{To: "me@example.com"})
	var emailErr *domainerror.EmailError
	if !errors.As(err, &emailErr) || emailErr.Code != domainerror.ErrCodeTemporaryEmailFailure {
		t.Errorf("expected temporary failure, got %v", err)
	}

	sender.SetFailure(errors.New("bad key"), true)
	_, err = sender.Send(ctx, adapter.SendEmailInput{To: "me@example.com"})
	if !errors.As(err, &emailErr) || emailErr.Code != domainerror.ErrCodePermanentEmailFailure {
		t.Errorf("expected permanent failure, got %v", err)
	}

	if got := len(sender.Sent()); got != 1 {
		t.Errorf("expected 1 recorded email, got %d", got)
	}

	sender.Reset()
	if got := len(sender.Sent()); got != 0 {
		t.Errorf("expected reset to clear emails, got %d", got)
	}
}

func newResendServer(t *testing.T, status int, body map[string]any, received *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/emails" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if received != nil {
			_ = json.NewDecoder(r.Body).Decode(received)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResendClient_Send(t *testing.T) {
	var received map[string]any
	server := newResendServer(t, http.StatusOK, map[string]any{"id": "msg_123"}, &received)

	client, err := NewResendClient("re_test", "Life Index", "index@example.com", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := client.Send(context.Background(), adapter.SendEmailInput{
		To:      "me@example.com",
		Subject: "Life Index report",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MessageID != "msg_123" {
		t.Errorf("expected msg_123, got %s", result.MessageID)
	}
	if received["from"] != "Life Index <index@example.com>" {
		t.Errorf("expected from header, got %v", received["from"])
	}
	if received["subject"] != "Life Index report" {
		t.Errorf("expected subject, got %v", received["subject"])
	}
}

func TestResendClient_SendFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		expected domainerror.EmailErrorCode
	}{
		{name: "invalid recipient is permanent", status: http.StatusUnprocessableEntity, message: "Invalid `to` field", expected: domainerror.ErrCodePermanentEmailFailure},
		{name: "provider outage is temporary", status: http.StatusInternalServerError, message: "internal server error", expected: domainerror.ErrCodeTemporaryEmailFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newResendServer(t, tt.status, map[string]any{"statusCode": tt.status, "message": tt.message, "name": "error"}, nil)
			client, err := NewResendClient("re_test", "Life Index", "index@example.com", server.URL)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			_, err = client.Send(context.Background(), adapter.SendEmailInput{To: "me@example.com"})
			var emailErr *domainerror.EmailError
			if !errors.As(err, &emailErr) {
				t.Fatalf("expected EmailError, got %v", err)
			}
			if emailErr.Code != tt.expected {
				t.Errorf("expected code %s, got %s", tt.expected, emailErr.Code)
			}
		})
	}
}

func TestNewResendClient_InvalidBaseURL(t *testing.T) {
	if _, err := NewResendClient("re_test", "Life Index", "index@example.com", "://nope"); err == nil {
		t.Error("expected error for invalid base url")
	}
}
