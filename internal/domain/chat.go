package domain

import (
	"fmt"
	"time"
)

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeAudio MessageType = "audio"
	MessageTypeVideo MessageType = "video"
	MessageTypeImage MessageType = "image"
)

// ParseMessageType validates a wire value; the empty string defaults to "text".
func ParseMessageType(s string) (MessageType, error) {
	switch MessageType(s) {
	case "":
		return MessageTypeText, nil
	case MessageTypeText, MessageTypeAudio, MessageTypeVideo, MessageTypeImage:
		return MessageType(s), nil
	default:
		return "", fmt.Errorf("unknown message type: %q", s)
	}
}

const MessageStatusSent = "sent"

// ChatMessage is one persisted chat row. Exactly one of RoomID and
// ReceiverID is set: RoomID for playdate room chat, ReceiverID for
// direct 1:1 chat. SenderName is resolved from the sender's profile
// when reading history and is not stored.
type ChatMessage struct {
	ID         uint        `json:"id"`
	SenderID   uint        `json:"sender_id"`
	SenderName string      `json:"sender_name,omitempty"`
	ReceiverID *uint       `json:"receiver_id,omitempty"`
	RoomID     *string     `json:"room_id,omitempty"`
	Message    string      `json:"message"`
	Type       MessageType `json:"message_type"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

func NewChatMessage(sender *User, body string, msgType MessageType) *ChatMessage {
	msg := &ChatMessage{
		Message:   body,
		Type:      msgType,
		Status:    MessageStatusSent,
		CreatedAt: time.Now().UTC(),
	}
	if sender != nil {
		msg.SenderID = sender.ID
		msg.SenderName = sender.DisplayName()
	}
	return msg
}
