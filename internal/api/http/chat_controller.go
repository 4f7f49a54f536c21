package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SangamithraMB/Sport-buddy-backend/internal/auth"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/domain"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/service"
	"github.com/SangamithraMB/Sport-buddy-backend/internal/ws"
	"github.com/SangamithraMB/Sport-buddy-backend/lib/logger/sl"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Client-emitted event names.
const (
	eventJoinRoom       = "join_room"
	eventLeaveRoom      = "leave_room"
	eventSendMessage    = "send_message"
	eventGetChatHistory = "get_chat_history"
)

// clientMessage is one inbound websocket frame. The token rides on every
// frame and is re-verified per event.
type clientMessage struct {
	Event       string `json:"event"`
	Token       string `json:"token,omitempty"`
	PlaydateID  *uint  `json:"playdate_id,omitempty"`
	PeerID      *uint  `json:"peer_id,omitempty"`
	Message     string `json:"message,omitempty"`
	MessageType string `json:"message_type,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

type ChatController struct {
	chats      service.ChatInteractor
	membership service.MembershipInteractor
	tokens     *auth.TokenManager
	directory  *ws.Directory
	upgrader   websocket.Upgrader
	log        *slog.Logger
}

func NewChatController(
	chats service.ChatInteractor,
	membership service.MembershipInteractor,
	tokens *auth.TokenManager,
	directory *ws.Directory,
	log *slog.Logger,
) *ChatController {
	if log == nil {
		log = slog.Default()
	}
	return &ChatController{
		chats:      chats,
		membership: membership,
		tokens:     tokens,
		directory:  directory,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: log,
	}
}

// ServeWS is the connection lifecycle handler: a missing or invalid token
// is rejected before anything is registered, and a read failure always
// runs the same idempotent cleanup path.
func (c *ChatController) ServeWS(ctx *gin.Context) {
	token := ctx.Query("token")
	identity, err := c.tokens.Verify(token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Error("websocket upgrade failed", sl.Err(err))
		return
	}

	session := ws.NewSession(identity.UserID, identity.DisplayName, conn)
	go session.WriteLoop()

	session.Enqueue(ws.Event{
		Event: ws.EventConnected,
		Data: gin.H{
			"session_id":   session.ID,
			"user_id":      session.UserID,
			"display_name": session.DisplayName,
		},
	})

	c.log.Info("session connected",
		slog.String("session_id", session.ID),
		slog.Uint64("user_id", uint64(session.UserID)),
	)

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			c.teardown(session, conn)
			return
		}
		c.dispatch(session, &msg)
	}
}

// dispatch handles one inbound event. Failures become an error event to
// this session only; they never terminate the read loop or touch other
// connections.
func (c *ChatController) dispatch(session *ws.Session, msg *clientMessage) {
	switch msg.Event {
	case eventJoinRoom:
		c.handleJoinRoom(session, msg)
	case eventLeaveRoom:
		c.handleLeaveRoom(session, msg)
	case eventSendMessage:
		c.handleSendMessage(session, msg)
	case eventGetChatHistory:
		c.handleChatHistory(session, msg)
	default:
		c.sendError(session, codeBadRequest, "unsupported event: "+msg.Event)
	}
}

func (c *ChatController) handleJoinRoom(session *ws.Session, msg *clientMessage) {
	identity, err := c.tokens.Verify(msg.Token)
	if err != nil {
		c.sendError(session, codeAuthenticationFailed, "invalid or expired token")
		return
	}

	room, err := c.resolveRoom(identity, msg)
	if err != nil {
		c.sendError(session, errorCode(err), err.Error())
		return
	}

	if msg.PlaydateID != nil {
		member, err := c.membership.IsParticipant(context.Background(), identity.UserID, *msg.PlaydateID)
		if err != nil {
			c.sendError(session, codeInternalError, "could not check playdate membership")
			return
		}
		if !member {
			c.sendError(session, codeConflict, "join the playdate before joining its room")
			return
		}
	}

	c.directory.Join(room, session)

	session.Enqueue(ws.Event{
		Event: ws.EventRoomJoined,
		Data:  gin.H{"room": room},
	})
	c.directory.Broadcast(room, ws.Event{
		Event: ws.EventUserJoined,
		Data: gin.H{
			"room":         room,
			"user_id":      session.UserID,
			"display_name": session.DisplayName,
		},
	}, session.ID)

	c.log.Info("session joined room",
		slog.String("session_id", session.ID),
		slog.String("room", room),
	)
}

func (c *ChatController) handleLeaveRoom(session *ws.Session, msg *clientMessage) {
	identity, err := c.tokens.Verify(msg.Token)
	if err != nil {
		c.sendError(session, codeAuthenticationFailed, "invalid or expired token")
		return
	}

	room, err := c.resolveRoom(identity, msg)
	if err != nil {
		c.sendError(session, errorCode(err), err.Error())
		return
	}

	if c.directory.Leave(room, session) {
		c.directory.Broadcast(room, ws.Event{
			Event: ws.EventUserLeft,
			Data: gin.H{
				"room":         room,
				"user_id":      session.UserID,
				"display_name": session.DisplayName,
			},
		}, session.ID)
	}
}

func (c *ChatController) handleSendMessage(session *ws.Session, msg *clientMessage) {
	target := service.MessageTarget{PlaydateID: msg.PlaydateID, PeerID: msg.PeerID}

	_, err := c.chats.Send(context.Background(), msg.Token, target, msg.Message, msg.MessageType, msg.Timestamp)
	if err != nil {
		c.sendError(session, errorCode(err), err.Error())
		return
	}
}

func (c *ChatController) handleChatHistory(session *ws.Session, msg *clientMessage) {
	target := service.MessageTarget{PlaydateID: msg.PlaydateID, PeerID: msg.PeerID}

	history, err := c.chats.History(context.Background(), msg.Token, target)
	if err != nil {
		c.sendError(session, errorCode(err), err.Error())
		return
	}

	session.Enqueue(ws.Event{
		Event: ws.EventChatHistory,
		Data:  gin.H{"messages": history},
	})
}

// History serves the same data as the get_chat_history event over REST.
func (c *ChatController) History(ctx *gin.Context) {
	target := service.MessageTarget{}
	if raw := ctx.Query("playdate_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid playdate id"})
			return
		}
		target.PlaydateID = &id
	}
	if raw := ctx.Query("peer_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer id"})
			return
		}
		target.PeerID = &id
	}

	history, err := c.chats.History(ctx.Request.Context(), bearerToken(ctx), target)
	if err != nil {
		ctx.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": history})
}

func (c *ChatController) resolveRoom(identity *auth.Identity, msg *clientMessage) (string, error) {
	switch {
	case msg.PlaydateID != nil && msg.PeerID == nil:
		return domain.PlaydateRoom(*msg.PlaydateID), nil
	case msg.PeerID != nil && msg.PlaydateID == nil:
		return domain.DirectRoom(identity.UserID, *msg.PeerID), nil
	default:
		return "", service.ErrInvalidTarget
	}
}

// teardown runs on every read-loop exit. DropSession is idempotent, so a
// session torn down twice emits departure notices at most once.
func (c *ChatController) teardown(session *ws.Session, conn *websocket.Conn) {
	rooms := c.directory.DropSession(session)
	for _, room := range rooms {
		c.directory.Broadcast(room, ws.Event{
			Event: ws.EventUserLeft,
			Data: gin.H{
				"room":         room,
				"user_id":      session.UserID,
				"display_name": session.DisplayName,
			},
		}, session.ID)
	}

	session.Close()
	conn.Close()

	c.log.Info("session disconnected",
		slog.String("session_id", session.ID),
		slog.Int("rooms_left", len(rooms)),
	)
}

func (c *ChatController) sendError(session *ws.Session, code, message string) {
	session.Enqueue(ws.Event{
		Event: ws.EventError,
		Data:  gin.H{"code": code, "message": message},
	})
}
