package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/traveller-go/internal/application/mediator"
	"github.com/andrescamacho/traveller-go/internal/domain/ports"
)

// SentRequest records one call to MockTransport.Send
type SentRequest struct {
	Method    string
	Path      string
	Payload   interface{}
	RequestID string
}

// MockTransport is a test double for ports.Transport
type MockTransport struct {
	mu       sync.Mutex
	reply    *ports.Reply
	err      error
	sent     []SentRequest
	sendFunc func(ctx context.Context, method, path string, payload interface{}) (*ports.Reply, error)
}

// NewMockTransport creates a transport that answers 200 "This API call succeeded"
func NewMockTransport() *MockTransport {
	return &MockTransport{
		reply: &ports.Reply{StatusCode: 200, Body: []byte("This API call succeeded")},
	}
}

// Respond sets the reply returned by subsequent sends
func (m *MockTransport) Respond(status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reply = &ports.Reply{StatusCode: status, Body: []byte(body)}
	m.err = nil
}

// Fail makes subsequent sends return err with no reply
func (m *MockTransport) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reply = nil
	m.err = err
}

// SetSendFunc overrides Send entirely
func (m *MockTransport) SetSendFunc(fn func(ctx context.Context, method, path string, payload interface{}) (*ports.Reply, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// Send implements ports.Transport
func (m *MockTransport) Send(ctx context.Context, method, path string, payload interface{}) (*ports.Reply, error) {
	m.mu.Lock()
	m.sent = append(m.sent, SentRequest{
		Method:    method,
		Path:      path,
		Payload:   payload,
		RequestID: mediator.RequestIDFromContext(ctx),
	})
	fn, reply, err := m.sendFunc, m.reply, m.err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, method, path, payload)
	}
	return reply, err
}

// Sent returns every recorded send
func (m *MockTransport) Sent() []SentRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentRequest, len(m.sent))
	copy(out, m.sent)
	return out
}

// LastSent returns the most recent send, or nil
func (m *MockTransport) LastSent() *SentRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	last := m.sent[len(m.sent)-1]
	return &last
}
