package testutils

import (
	"encoding/json"
	"testing"

	"arthurchat/pkg/chattypes"

	"github.com/stretchr/testify/require"
)

// TestDataGenerator provides common conversation fixtures.
type TestDataGenerator struct{}

// NewTestDataGenerator creates a new test data generator.
func NewTestDataGenerator() *TestDataGenerator {
	return &TestDataGenerator{}
}

// SampleRecord returns a small valid conversation with one exchange.
func (g *TestDataGenerator) SampleRecord() chattypes.ConversationRecord {
	start := BaseTime.UnixMilli()
	return chattypes.ConversationRecord{
		SessionID:    "conv_1735689600000_import1",
		StartTime:    start,
		LastActivity: start + 5000,
		Messages: []chattypes.Message{
			{ID: "msg_a", Timestamp: start + 1000, Sender: chattypes.SenderUser, Content: "Hello Arthur", Type: chattypes.MessageTypeText},
			{ID: "msg_b", Timestamp: start + 5000, Sender: chattypes.SenderBot, Content: "Hello! How can I help?", Type: chattypes.MessageTypeText},
		},
		Metadata: chattypes.ConversationMetadata{
			UserAgent: "arthurchat/test",
			Language:  "en-US",
			Timezone:  "UTC",
		},
	}
}

// SampleRecordJSON serializes SampleRecord.
func (g *TestDataGenerator) SampleRecordJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(g.SampleRecord())
	require.NoError(t, err)
	return string(data)
}

// MalformedRecords returns serialized inputs that must be rejected by import and load.
func (g *TestDataGenerator) MalformedRecords() map[string]string {
	return map[string]string{
		"not json":               `{not json`,
		"array":                  `[]`,
		"missing sessionId":      `{"startTime":1,"lastActivity":2,"messages":[],"metadata":{}}`,
		"numeric sessionId":      `{"sessionId":5,"startTime":1,"lastActivity":2,"messages":[],"metadata":{}}`,
		"string startTime":       `{"sessionId":"s","startTime":"1","lastActivity":2,"messages":[],"metadata":{}}`,
		"missing lastActivity":   `{"sessionId":"s","startTime":1,"messages":[],"metadata":{}}`,
		"messages not array":     `{"sessionId":"s","startTime":1,"lastActivity":2,"messages":{},"metadata":{}}`,
		"null messages":          `{"sessionId":"s","startTime":1,"lastActivity":2,"messages":null,"metadata":{}}`,
		"metadata not object":    `{"sessionId":"s","startTime":1,"lastActivity":2,"messages":[],"metadata":"x"}`,
		"null metadata":          `{"sessionId":"s","startTime":1,"lastActivity":2,"messages":[],"metadata":null}`,
		"message with bad field": `{"sessionId":"s","startTime":1,"lastActivity":2,"messages":[{"id":7}],"metadata":{}}`,
	}
}
