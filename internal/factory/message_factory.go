// Package factory maps message data to the display component family for its sender.
package factory

import (
	"errors"
	"fmt"

	"arthurchat/internal/idgen"
	"arthurchat/pkg/chattypes"
)

// ErrUnknownSender marks a message whose sender is outside the closed set.
// It is a contract violation and must not be swallowed.
var ErrUnknownSender = errors.New("unknown sender type")

// UnknownSenderError carries the offending sender value.
type UnknownSenderError struct {
	Sender chattypes.Sender
}

func (e *UnknownSenderError) Error() string {
	return fmt.Sprintf("unknown sender type: %q", string(e.Sender))
}

// Unwrap lets errors.Is match ErrUnknownSender.
func (e *UnknownSenderError) Unwrap() error {
	return ErrUnknownSender
}

// ComponentKind names a display component family.
type ComponentKind string

const (
	UserMessageComponent ComponentKind = "user-message"
	BotMessageComponent  ComponentKind = "bot-message-new"
)

// Properties are the fully resolved display properties of a message.
type Properties struct {
	Content     string                `json:"content"`
	Sender      chattypes.Sender      `json:"sender"`
	Timestamp   int64                 `json:"timestamp"`
	MessageID   string                `json:"messageId"`
	MessageType chattypes.MessageType `json:"messageType"`
}

// Component is the selected family plus its properties.
type Component struct {
	Kind       ComponentKind `json:"component"`
	Properties Properties    `json:"properties"`
}

// MessageConfig describes how a sender's messages are mounted and styled.
type MessageConfig struct {
	Selector  string        `json:"selector"`
	Component ComponentKind `json:"component"`
	Styles    []string      `json:"styles"`
}

// MessageFactory resolves message data to a display component.
type MessageFactory struct {
	clock chattypes.Clock
	ids   chattypes.IDGenerator
}

// NewMessageFactory returns a factory that fills missing timestamps from clock and
// missing ids from ids. Nil arguments fall back to the system clock and generator.
func NewMessageFactory(clock chattypes.Clock, ids chattypes.IDGenerator) *MessageFactory {
	if clock == nil {
		clock = idgen.SystemClock{}
	}
	if ids == nil {
		ids = idgen.New(clock)
	}
	return &MessageFactory{clock: clock, ids: ids}
}

// CreateMessageComponent picks the component family for data.Sender and resolves
// display properties. Unset timestamp, id and type are synthesized for display only.
func (f *MessageFactory) CreateMessageComponent(data chattypes.MessageData) (Component, error) {
	kind, err := componentFor(data.Sender)
	if err != nil {
		return Component{}, err
	}

	props := Properties{
		Content:     data.Content,
		Sender:      data.Sender,
		Timestamp:   data.Timestamp,
		MessageID:   data.ID,
		MessageType: data.Type.OrText(),
	}
	if props.Timestamp == 0 {
		props.Timestamp = f.clock.Now().UnixMilli()
	}
	if props.MessageID == "" {
		props.MessageID = f.ids.NewID(idgen.PrefixMessage)
	}

	return Component{Kind: kind, Properties: props}, nil
}

// MustCreateMessageComponent is like CreateMessageComponent but panics on an unknown sender.
func (f *MessageFactory) MustCreateMessageComponent(data chattypes.MessageData) Component {
	c, err := f.CreateMessageComponent(data)
	if err != nil {
		panic(err)
	}
	return c
}

// GetMessageConfig returns the mount configuration for sender.
func GetMessageConfig(sender chattypes.Sender) (MessageConfig, error) {
	switch sender {
	case chattypes.SenderUser:
		return MessageConfig{
			Selector:  "app-user-message",
			Component: UserMessageComponent,
			Styles:    []string{"user-message"},
		}, nil
	case chattypes.SenderBot:
		return MessageConfig{
			Selector:  "app-bot-message-new",
			Component: BotMessageComponent,
			Styles:    []string{"bot-message"},
		}, nil
	default:
		return MessageConfig{}, &UnknownSenderError{Sender: sender}
	}
}

// SupportedMessageTypes lists the message kinds the display layer understands.
func SupportedMessageTypes() []chattypes.MessageType {
	return []chattypes.MessageType{
		chattypes.MessageTypeText,
		chattypes.MessageTypeAudio,
		chattypes.MessageTypeImage,
		chattypes.MessageTypeFile,
	}
}

// SupportedSenders lists the senders the display layer understands.
func SupportedSenders() []chattypes.Sender {
	return []chattypes.Sender{chattypes.SenderUser, chattypes.SenderBot}
}

func componentFor(sender chattypes.Sender) (ComponentKind, error) {
	switch sender {
	case chattypes.SenderUser:
		return UserMessageComponent, nil
	case chattypes.SenderBot:
		return BotMessageComponent, nil
	default:
		return "", &UnknownSenderError{Sender: sender}
	}
}
