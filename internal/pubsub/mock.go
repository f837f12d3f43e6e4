package pubsub

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// MockPubSubClient keeps published league events in memory, grouped by topic.
// Payloads go through the same msgpack encoding as the real client, so a
// message that would fail to publish fails here too.
type MockPubSubClient struct {
	mu sync.Mutex

	// Err, when set, is returned by every SendMessage after recording the attempt.
	Err error

	published map[EventType][][]byte
	attempts  int
}

// NewMock creates a new mock PubSubClient.
func NewMock() *MockPubSubClient {
	return &MockPubSubClient{published: make(map[EventType][][]byte)}
}

func (m *MockPubSubClient) SendMessage(topic EventType, data any) error {
	payload, err := msgpack.Marshal(data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts++
	if err != nil {
		return err
	}
	if m.Err != nil {
		return m.Err
	}
	m.published[topic] = append(m.published[topic], payload)
	return nil
}

func (m *MockPubSubClient) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (m *MockPubSubClient) Close() {}

// Count returns how many messages were published on a topic.
func (m *MockPubSubClient) Count(topic EventType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published[topic])
}

// Attempts counts every SendMessage call, failed ones included.
func (m *MockPubSubClient) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

// Settled decodes every prediction-settled message in publish order.
func (m *MockPubSubClient) Settled() ([]PredictionSettledMessage, error) {
	m.mu.Lock()
	payloads := append([][]byte(nil), m.published[EventPredictionSettled]...)
	m.mu.Unlock()

	out := make([]PredictionSettledMessage, 0, len(payloads))
	for _, p := range payloads {
		var msg PredictionSettledMessage
		if err := decode(p, &msg); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, nil
}

// Rounds decodes every round-advanced message in publish order.
func (m *MockPubSubClient) Rounds() ([]RoundAdvancedMessage, error) {
	m.mu.Lock()
	payloads := append([][]byte(nil), m.published[EventRoundAdvanced]...)
	m.mu.Unlock()

	out := make([]RoundAdvancedMessage, 0, len(payloads))
	for _, p := range payloads {
		var msg RoundAdvancedMessage
		if err := decode(p, &msg); err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, nil
}
