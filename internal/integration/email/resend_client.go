// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/life-index/backend/internal/application/adapter"
	domainerror "github.com/life-index/backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client. A non-empty baseURL replaces
// the default API endpoint.
func NewResendClient(apiKey, fromName, fromEmail, baseURL string) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid resend base url: %w", err)
		}
		client.BaseURL = u
	}

	return &ResendClient{
		client:    client,
		fromName:  fromName,
		fromEmail: fromEmail,
	}, nil
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	from := fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"permanent email failure",
				err,
			)
		}
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"temporary email failure",
			err,
		)
	}

	slog.Debug("Email accepted by provider", "to", input.To, "message_id", resp.Id)

	return &adapter.SendEmailResult{
		MessageID: resp.Id,
	}, nil
}

// isPermanentError reports whether resending the same email cannot succeed.
// 401, 403 and 422 are permanent; 429 and 5xx are temporary.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	permanentPatterns := []string{
		"401",
		"403",
		"422",
		"unauthorized",
		"forbidden",
		"validation",
		"invalid",
		"bad request",
	}

	for _, pattern := range permanentPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// MockEmailSender records emails instead of sending them. It backs the
// integration suite and local runs without a provider key.
type MockEmailSender struct {
	mu          sync.Mutex
	SentEmails  []adapter.SendEmailInput
	ShouldFail  bool
	FailError   error
	IsPermanent bool
}

// NewMockEmailSender creates a new mock email sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{
		SentEmails: make([]adapter.SendEmailInput, 0),
	}
}

// Send implements the adapter.EmailSender interface for testing.
func (m *MockEmailSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ShouldFail {
		if m.IsPermanent {
			return nil, domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"mock permanent failure",
				m.FailError,
			)
		}
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"mock temporary failure",
			m.FailError,
		)
	}

	m.SentEmails = append(m.SentEmails, input)

	return &adapter.SendEmailResult{
		MessageID: fmt.Sprintf("mock-%d", len(m.SentEmails)),
	}, nil
}

// SetFailure configures the mock to fail with the given error.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ShouldFail = true
	m.FailError = err
	m.IsPermanent = permanent
}

// Sent returns a copy of the recorded emails.
func (m *MockEmailSender) Sent() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]adapter.SendEmailInput, len(m.SentEmails))
	copy(out, m.SentEmails)
	return out
}

// Reset clears all sent emails and failure configuration.
func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SentEmails = make([]adapter.SendEmailInput, 0)
	m.ShouldFail = false
	m.FailError = nil
	m.IsPermanent = false
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*MockEmailSender)(nil)
)
