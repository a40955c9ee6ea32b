package services

import (
	"context"
	"errors"
	"strings"

	"arthurchat/internal/logger"
	"arthurchat/pkg/chattypes"
)

// FallbackBotMessage is recorded as the bot reply when the backend call fails.
const FallbackBotMessage = "An error has occurred while processing your request :("

// ErrEmptyInput is returned by Send for input that is empty after trimming.
var ErrEmptyInput = errors.New("message is empty")

// ErrChatNotInitialized is returned by Send before Initialize.
var ErrChatNotInitialized = errors.New("chat service not initialized")

// SendResult identifies the two messages one Send added.
type SendResult struct {
	UserMessageID string
	BotMessageID  string
	Reply         string
	Failed        bool
}

// ChatService runs one user turn: record the input, ask the backend, record the reply.
type ChatService struct {
	initialized bool
	messages    *MessageService
	backend     BotBackend
}

// NewChatService wires the send flow to messages and backend.
func NewChatService(messages *MessageService, backend BotBackend) *ChatService {
	return &ChatService{messages: messages, backend: backend}
}

// Name returns the service name "chat" for registration.
func (c *ChatService) Name() string {
	return "chat"
}

// Initialize marks the service ready.
func (c *ChatService) Initialize() error {
	c.initialized = true
	logger.Debug("ChatService initialized")
	return nil
}

// Send records text as typed as a user message and the backend reply as a bot message.
// Blank text is rejected. Backend failures are logged and replaced by
// FallbackBotMessage; they are not returned.
func (c *ChatService) Send(ctx context.Context, text string) (SendResult, error) {
	if !c.initialized {
		return SendResult{}, ErrChatNotInitialized
	}
	if strings.TrimSpace(text) == "" {
		return SendResult{}, ErrEmptyInput
	}

	result := SendResult{
		UserMessageID: c.messages.AddMessage(chattypes.MessageData{
			Content: text,
			Sender:  chattypes.SenderUser,
			Type:    chattypes.MessageTypeText,
		}),
	}

	reply, err := c.backend.SendMessage(ctx, text)
	if err != nil {
		logger.Error("Bot backend request failed", "error", err)
		reply = FallbackBotMessage
		result.Failed = true
	}

	result.Reply = reply
	result.BotMessageID = c.messages.AddMessage(chattypes.MessageData{
		Content: reply,
		Sender:  chattypes.SenderBot,
		Type:    chattypes.MessageTypeText,
	})
	return result, nil
}
