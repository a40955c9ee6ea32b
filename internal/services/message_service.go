package services

import (
	"fmt"
	"sync"

	"arthurchat/internal/factory"
	"arthurchat/internal/logger"
	"arthurchat/internal/reactive"
	"arthurchat/pkg/chattypes"
)

// ConversationStore is the persistence surface MessageService mediates through.
type ConversationStore interface {
	AddMessage(sender chattypes.Sender, content string, msgType chattypes.MessageType) string
	GetMessages() []chattypes.Message
	GetMessageByID(id string) (chattypes.Message, bool)
	UpdateMessage(id, content string) bool
	DeleteMessage(id string) bool
	ClearConversation()
	ImportConversation(serialized string) bool
}

// MessageService keeps a subscribable, display-oriented copy of the conversation
// in lockstep with the store. It never writes storage itself.
//
// Mutations update the store and queue the new sequence under mu, then deliver it
// after mu is released. Subscribers see sequences in mutation order and may call
// back into the service.
type MessageService struct {
	mu       sync.Mutex
	store    ConversationStore
	factory  *factory.MessageFactory
	messages *reactive.Subject[[]chattypes.MessageData]
}

// NewMessageService seeds the message sequence from store's current history.
func NewMessageService(store ConversationStore, messageFactory *factory.MessageFactory) *MessageService {
	if messageFactory == nil {
		messageFactory = factory.NewMessageFactory(nil, nil)
	}
	m := &MessageService{
		store:    store,
		factory:  messageFactory,
		messages: reactive.NewSubject([]chattypes.MessageData{}),
	}
	m.messages.Next(projectMessages(store.GetMessages()))
	return m
}

// Name returns the service name "message" for registration.
func (m *MessageService) Name() string {
	return "message"
}

// Initialize logs the seeded history size.
func (m *MessageService) Initialize() error {
	logger.Debug("MessageService initialized", "messages", len(m.messages.Value()))
	return nil
}

// Subscribe registers fn for every change of the full message sequence.
// fn is called immediately with the current sequence.
func (m *MessageService) Subscribe(fn func([]chattypes.MessageData)) func() {
	return m.messages.Subscribe(func(snapshot []chattypes.MessageData) {
		fn(cloneMessageData(snapshot))
	})
}

// AddMessage persists data through the store and publishes the extended sequence.
// The store assigns the id and the type (empty means text). A caller supplied
// timestamp is kept for display, otherwise the stored timestamp is used.
func (m *MessageService) AddMessage(data chattypes.MessageData) string {
	m.mu.Lock()
	id := m.store.AddMessage(data.Sender, data.Content, data.Type)

	complete := data
	complete.ID = id
	complete.Type = data.Type.OrText()
	if stored, ok := m.store.GetMessageByID(id); ok {
		complete.Type = stored.Type
		if complete.Timestamp == 0 {
			complete.Timestamp = stored.Timestamp
		}
	}

	current := m.messages.Value()
	next := make([]chattypes.MessageData, len(current), len(current)+1)
	copy(next, current)
	m.messages.Set(append(next, complete))
	m.mu.Unlock()

	m.messages.Flush()
	return id
}

// UpdateMessage changes the content of message id, mirroring only a successful store update.
func (m *MessageService) UpdateMessage(id, content string) bool {
	m.mu.Lock()
	if !m.store.UpdateMessage(id, content) {
		m.mu.Unlock()
		return false
	}

	current := m.messages.Value()
	next := make([]chattypes.MessageData, len(current))
	for i, msg := range current {
		if msg.ID == id {
			msg.Content = content
		}
		next[i] = msg
	}
	m.messages.Set(next)
	m.mu.Unlock()

	m.messages.Flush()
	return true
}

// DeleteMessage removes message id, mirroring only a successful store delete.
func (m *MessageService) DeleteMessage(id string) bool {
	m.mu.Lock()
	if !m.store.DeleteMessage(id) {
		m.mu.Unlock()
		return false
	}

	current := m.messages.Value()
	next := make([]chattypes.MessageData, 0, len(current))
	for _, msg := range current {
		if msg.ID != id {
			next = append(next, msg)
		}
	}
	m.messages.Set(next)
	m.mu.Unlock()

	m.messages.Flush()
	return true
}

// ClearAllMessages starts a new conversation and publishes an empty sequence.
func (m *MessageService) ClearAllMessages() {
	m.mu.Lock()
	m.store.ClearConversation()
	m.messages.Set([]chattypes.MessageData{})
	m.mu.Unlock()

	m.messages.Flush()
}

// ImportConversation imports serialized through the store and, on success,
// reseeds the sequence from the imported history.
func (m *MessageService) ImportConversation(serialized string) bool {
	m.mu.Lock()
	if !m.store.ImportConversation(serialized) {
		m.mu.Unlock()
		return false
	}
	m.messages.Set(projectMessages(m.store.GetMessages()))
	m.mu.Unlock()

	m.messages.Flush()
	return true
}

// Reload reseeds the sequence from the store.
func (m *MessageService) Reload() {
	m.mu.Lock()
	m.messages.Set(projectMessages(m.store.GetMessages()))
	m.mu.Unlock()

	m.messages.Flush()
}

// GetMessages returns a copy of the current sequence.
func (m *MessageService) GetMessages() []chattypes.MessageData {
	return cloneMessageData(m.messages.Value())
}

// GetMessageByID looks a message up in the current sequence.
func (m *MessageService) GetMessageByID(id string) (chattypes.MessageData, bool) {
	for _, msg := range m.messages.Value() {
		if msg.ID == id {
			return msg, true
		}
	}
	return chattypes.MessageData{}, false
}

// GetMessageStats counts the current sequence. Messages without a type count as text.
func (m *MessageService) GetMessageStats() chattypes.MessageStats {
	snapshot := m.messages.Value()
	stats := chattypes.MessageStats{
		Total:  len(snapshot),
		ByType: make(map[chattypes.MessageType]int),
	}
	for _, msg := range snapshot {
		switch msg.Sender {
		case chattypes.SenderUser:
			stats.UserMessages++
		case chattypes.SenderBot:
			stats.BotMessages++
		}
		stats.ByType[msg.Type.OrText()]++
	}
	return stats
}

// CreateMessageUsingFactory resolves data to its display component.
func (m *MessageService) CreateMessageUsingFactory(data chattypes.MessageData) (factory.Component, error) {
	component, err := m.factory.CreateMessageComponent(data)
	if err != nil {
		return factory.Component{}, fmt.Errorf("failed to create message component: %w", err)
	}
	return component, nil
}

// GetSupportedMessageTypes lists the known message kinds.
func (m *MessageService) GetSupportedMessageTypes() []chattypes.MessageType {
	return factory.SupportedMessageTypes()
}

// GetSupportedSenders lists the known senders.
func (m *MessageService) GetSupportedSenders() []chattypes.Sender {
	return factory.SupportedSenders()
}

func projectMessages(messages []chattypes.Message) []chattypes.MessageData {
	out := make([]chattypes.MessageData, len(messages))
	for i, msg := range messages {
		out[i] = chattypes.MessageData{
			ID:        msg.ID,
			Content:   msg.Content,
			Sender:    msg.Sender,
			Timestamp: msg.Timestamp,
			Type:      msg.Type,
		}
	}
	return out
}

func cloneMessageData(in []chattypes.MessageData) []chattypes.MessageData {
	out := make([]chattypes.MessageData, len(in))
	copy(out, in)
	return out
}
