// Package testutil holds testify mocks for the pipeline stages.
package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"youtube-whisper/internal/app/api"
)

var _ api.Transcriber = (*MockTranscriber)(nil)

// MockTranscriber is a testify mock of api.Transcriber that also records the
// paths it was asked to transcribe.
type MockTranscriber struct {
	mock.Mock
	mu    sync.Mutex
	Calls []string
}

func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Returns stubs every call with text.
func (m *MockTranscriber) Returns(text string) *MockTranscriber {
	m.On("Transcript", mock.Anything, mock.Anything).Return(text, nil)
	return m
}

// Fails stubs every call with err.
func (m *MockTranscriber) Fails(err error) *MockTranscriber {
	m.On("Transcript", mock.Anything, mock.Anything).Return("", err)
	return m
}

func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, inputFilePath)
	m.mu.Unlock()

	args := m.Called(ctx, inputFilePath)
	return args.String(0), args.Error(1)
}

// CallCount returns how many times Transcript ran.
func (m *MockTranscriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
