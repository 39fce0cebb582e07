package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/lingocoach/go-backend/internal/services"
)

// Client→server and server→client event names.
const (
	eventJoin    = "join-conversation"
	eventSend    = "send-message"
	eventReply   = "ai-response"
	eventError   = "error"
	failedToSend = "Failed to process message"

	// missingSendFields reports an invalid send-message payload; distinct
	// from failedToSend so clients can tell bad input from a server failure.
	missingSendFields = "conversationId and message are required"
)

// Frame is one JSON event on the wire.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// inboundFrame defers payload decoding until the event is known.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// sendMessageData is the payload of a send-message event.
type sendMessageData struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
	Language       string `json:"language"`
	Level          string `json:"level"`
}

// replyData is the payload of an ai-response broadcast.
type replyData struct {
	Message            string `json:"message"`
	Suggestions        any    `json:"suggestions"`
	GrammarCorrections any    `json:"grammarCorrections"`
}

// ConversationTurner is the slice of the conversation service the realtime
// layer needs; the HTTP handler consumes the same use-case, so persistence
// semantics are identical on both transports.
type ConversationTurner interface {
	SendTurn(ctx context.Context, userID string, in services.SendTurnInput) (*services.TurnResult, error)
}

// Handler upgrades HTTP requests to WebSocket sessions and dispatches event
// frames.
type Handler struct {
	Hub           *Hub
	Conversations ConversationTurner

	// Upgrader may be customized (origin checks); the zero value accepts
	// any origin, matching the browser clients served from other hosts.
	Upgrader websocket.Upgrader
}

// NewHandler wires a Handler with a permissive origin check.
func NewHandler(hub *Hub, conv ConversationTurner) *Handler {
	return &Handler{
		Hub:           hub,
		Conversations: conv,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Serve is the Gin endpoint that upgrades the connection and runs the
// session until the peer disconnects. The auth middleware has already stashed
// the user id.
func (h *Handler) Serve(c *gin.Context) {
	uid, _ := c.Get("userID")
	userID, _ := uid.(string)

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error.
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}

	cl := newClient(h.Hub, conn, userID)
	go cl.writePump()
	h.readPump(c.Request.Context(), cl)
}

// readPump consumes frames until the connection drops, then tears down room
// membership.
func (h *Handler) readPump(ctx context.Context, cl *Client) {
	defer func() {
		h.Hub.Leave(cl)
		cl.closeSend()
	}()

	cl.conn.SetReadLimit(maxFrameBytes)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var f inboundFrame
		if err := cl.conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("user_id", cl.userID).Msg("ws read error")
			}
			return
		}
		h.handleFrame(ctx, cl, f)
	}
}

// handleFrame dispatches one inbound event. Unknown events get a
// client-scoped error frame; they never tear the connection down.
func (h *Handler) handleFrame(ctx context.Context, cl *Client, f inboundFrame) {
	switch f.Event {
	case eventJoin:
		var room string
		if err := json.Unmarshal(f.Data, &room); err != nil || room == "" {
			cl.enqueue(Frame{Event: eventError, Data: map[string]string{"message": "conversation id required"}})
			return
		}
		h.Hub.Join(room, cl)

	case eventSend:
		var data sendMessageData
		if err := json.Unmarshal(f.Data, &data); err != nil ||
			data.ConversationID == "" || data.Message == "" {
			cl.enqueue(Frame{Event: eventError, Data: map[string]string{"message": missingSendFields}})
			return
		}

		res, err := h.Conversations.SendTurn(ctx, cl.userID, services.SendTurnInput{
			ConversationID: data.ConversationID,
			Message:        data.Message,
			Language:       data.Language,
			Level:          data.Level,
		})
		if err != nil {
			cl.enqueue(Frame{Event: eventError, Data: map[string]string{"message": failedToSend}})
			return
		}

		h.Hub.Broadcast(data.ConversationID, Frame{Event: eventReply, Data: replyData{
			Message:            res.Reply.Content,
			Suggestions:        res.Reply.Suggestions,
			GrammarCorrections: res.Reply.GrammarCorrections,
		}})

	default:
		cl.enqueue(Frame{Event: eventError, Data: map[string]string{"message": "unknown event"}})
	}
}
