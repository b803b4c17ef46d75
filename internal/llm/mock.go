package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response     string
	Err          error
	Unconfigured bool
	Calls        int
	LastMessages []ChatMessage
}

func (m *MockClient) Chat(_ context.Context, messages []ChatMessage) (string, error) {
	m.Calls++
	m.LastMessages = messages
	return m.Response, m.Err
}

func (m *MockClient) Configured() bool {
	return !m.Unconfigured
}
