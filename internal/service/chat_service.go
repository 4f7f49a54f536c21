package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/auth"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/repository"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/ws"
	"github.com/SangamithraMB/Sport-buddy-backend/lib/logger/sl"
)

var (
	ErrInvalidTarget      = errors.New("exactly one of playdate room and receiver must be set")
	ErrInvalidMessageType = errors.New("invalid message type")
	ErrEmptyMessage       = errors.New("message cannot be empty")
	ErrMessageTooLong     = errors.New("message is too long")
)

const maxChatMessageLength = 4000

// ChatService validates, persists and fans out chat messages. Fan-out is
// best-effort and decoupled from persistence: a message is stored first,
// then offered to every session in the target room without blocking on
// slow consumers.
type ChatService struct {
	chats     repository.ChatRepository
	users     repository.UserRepository
	playdates repository.PlaydateRepository
	tokens    *auth.TokenManager
	directory *ws.Directory
	log       *slog.Logger
}

func NewChatService(
	chats repository.ChatRepository,
	users repository.UserRepository,
	playdates repository.PlaydateRepository,
	tokens *auth.TokenManager,
	directory *ws.Directory,
	log *slog.Logger,
) *ChatService {
	if log == nil {
		log = slog.Default()
	}
	return &ChatService{
		chats:     chats,
		users:     users,
		playdates: playdates,
		tokens:    tokens,
		directory: directory,
		log:       log,
	}
}

func (s *ChatService) Send(ctx context.Context, token string, target MessageTarget, body, messageType, clientTimestamp string) (*domain.ChatMessage, error) {
	const op = "service.chat.send"

	identity, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	log := s.log.With(
		slog.String("op", op),
		slog.Uint64("sender_id", uint64(identity.UserID)),
	)

	room, err := resolveRoom(identity.UserID, target)
	if err != nil {
		return nil, err
	}

	msgType, err := domain.ParseMessageType(messageType)
	if err != nil {
		return nil, ErrInvalidMessageType
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(body) > maxChatMessageLength {
		return nil, ErrMessageTooLong
	}

	if err := s.checkTarget(ctx, target); err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		SenderID:   identity.UserID,
		SenderName: identity.DisplayName,
		ReceiverID: target.PeerID,
		Message:    body,
		Type:       msgType,
		Status:     domain.MessageStatusSent,
		CreatedAt:  normalizeTimestamp(clientTimestamp),
	}
	if target.PlaydateID != nil {
		roomID := room
		msg.RoomID = &roomID
	}

	if err := s.chats.Save(ctx, msg); err != nil {
		log.Error("failed to save chat message", sl.Err(err))
		return nil, err
	}

	s.directory.Broadcast(room, ws.Event{
		Event: ws.EventReceiveMessage,
		Data:  msg,
	}, "")

	log.Debug("message routed", slog.String("room", room))
	return msg, nil
}

func (s *ChatService) History(ctx context.Context, token string, target MessageTarget) ([]*domain.ChatMessage, error) {
	identity, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if target.PlaydateID == nil && target.PeerID == nil ||
		target.PlaydateID != nil && target.PeerID != nil {
		return nil, ErrInvalidTarget
	}
	if err := s.checkTarget(ctx, target); err != nil {
		return nil, err
	}

	if target.PlaydateID != nil {
		return s.chats.ListByRoom(ctx, domain.PlaydateRoom(*target.PlaydateID))
	}
	return s.chats.ListByPair(ctx, identity.UserID, *target.PeerID)
}

// checkTarget resolves the message destination: the playdate or the peer
// must exist before anything is persisted or routed.
func (s *ChatService) checkTarget(ctx context.Context, target MessageTarget) error {
	if target.PlaydateID != nil {
		if _, err := s.playdates.GetByID(ctx, *target.PlaydateID); err != nil {
			return err
		}
	}
	if target.PeerID != nil {
		if _, err := s.users.GetByID(ctx, *target.PeerID); err != nil {
			return err
		}
	}
	return nil
}

func resolveRoom(senderID uint, target MessageTarget) (string, error) {
	switch {
	case target.PlaydateID != nil && target.PeerID == nil:
		return domain.PlaydateRoom(*target.PlaydateID), nil
	case target.PeerID != nil && target.PlaydateID == nil:
		return domain.DirectRoom(senderID, *target.PeerID), nil
	default:
		return "", ErrInvalidTarget
	}
}

// normalizeTimestamp applies the single timestamp policy: a client value
// is honored only when it parses as RFC3339 (with or without fractional
// seconds) and is then converted to UTC; anything else, including the
// empty string, falls back to the server clock.
func normalizeTimestamp(clientTimestamp string) time.Time {
	clientTimestamp = strings.TrimSpace(clientTimestamp)
	if clientTimestamp != "" {
		if parsed, err := time.Parse(time.RFC3339Nano, clientTimestamp); err == nil {
			return parsed.UTC()
		}
		if parsed, err := time.Parse(time.RFC3339, clientTimestamp); err == nil {
			return parsed.UTC()
		}
	}
	return time.Now().UTC()
}
