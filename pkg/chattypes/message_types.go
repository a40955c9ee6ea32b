// Package chattypes defines the shared data model for arthurchat.
// This file contains the conversation types: messages, the durable conversation
// record, and the statistics derived from it.
package chattypes

// Sender identifies who authored a message.
type Sender string

// MessageType identifies the content kind of a message.
type MessageType string

const (
	// SenderUser marks messages typed by the person using the client.
	SenderUser Sender = "user"
	// SenderBot marks messages produced by the assistant backend.
	SenderBot Sender = "bot"
)

const (
	MessageTypeText  MessageType = "text"
	MessageTypeAudio MessageType = "audio"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)

// IsValid reports whether s is one of the known senders.
func (s Sender) IsValid() bool {
	return s == SenderUser || s == SenderBot
}

// IsValid reports whether t is one of the known message types.
func (t MessageType) IsValid() bool {
	switch t {
	case MessageTypeText, MessageTypeAudio, MessageTypeImage, MessageTypeFile:
		return true
	}
	return false
}

// OrText returns t, or MessageTypeText when t is empty.
func (t MessageType) OrText() MessageType {
	if t == "" {
		return MessageTypeText
	}
	return t
}

// Message is one persisted entry of the conversation log.
// ID and Timestamp never change after creation; Timestamp is Unix milliseconds.
type Message struct {
	ID        string      `json:"id"`
	Timestamp int64       `json:"timestamp"`
	Sender    Sender      `json:"sender"`
	Content   string      `json:"content"`
	Type      MessageType `json:"type"`
}

// ConversationMetadata describes the environment a conversation was started in.
type ConversationMetadata struct {
	UserAgent string `json:"userAgent"`
	Language  string `json:"language"`
	Timezone  string `json:"timezone"`
}

// ConversationRecord is the durable unit of storage: one session and its ordered messages.
type ConversationRecord struct {
	SessionID    string               `json:"sessionId"`
	StartTime    int64                `json:"startTime"`
	LastActivity int64                `json:"lastActivity"`
	Messages     []Message            `json:"messages"`
	Metadata     ConversationMetadata `json:"metadata"`
}

// Clone returns a deep copy of the record so callers cannot mutate the original's messages.
func (r ConversationRecord) Clone() ConversationRecord {
	out := r
	out.Messages = make([]Message, len(r.Messages))
	copy(out.Messages, r.Messages)
	return out
}

// ConversationStats summarises a conversation record.
// Duration is the time elapsed since StartTime at the moment of the read, in milliseconds.
type ConversationStats struct {
	TotalMessages int   `json:"totalMessages"`
	UserMessages  int   `json:"userMessages"`
	BotMessages   int   `json:"botMessages"`
	Duration      int64 `json:"duration"`
	LastActivity  int64 `json:"lastActivity"`
}

// ConversationExport is the portable serialization produced by an export.
type ConversationExport struct {
	ConversationRecord
	Stats      ConversationStats `json:"stats"`
	ExportDate string            `json:"exportDate"`
}

// MessageData is the display-level projection of a message. Zero values mean "unset"
// and are filled in by whoever builds the final record or component.
type MessageData struct {
	Content   string         `json:"content"`
	Sender    Sender         `json:"sender"`
	Timestamp int64          `json:"timestamp,omitempty"`
	ID        string         `json:"id,omitempty"`
	Type      MessageType    `json:"type,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// MessageStats counts the messages of the display projection.
type MessageStats struct {
	Total        int                 `json:"total"`
	UserMessages int                 `json:"userMessages"`
	BotMessages  int                 `json:"botMessages"`
	ByType       map[MessageType]int `json:"byType"`
}
