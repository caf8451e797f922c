package app

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"event_management_service/internal/chat/domain"
	"event_management_service/internal/chat/repository"
	"event_management_service/pkg/logger"
	"event_management_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// ChatWebsocketHandler holds the chat use cases behind one connection
type ChatWebsocketHandler struct {
	roomUC    *RoomUseCase
	messageUC *SendMessageUseCase
	pubSub    *repository.RedisPubSub
}

// NewChatWebsocketHandler create ChatWebsocketHandler
func NewChatWebsocketHandler(
	roomUC *RoomUseCase,
	messageUC *SendMessageUseCase,
	pubSub *repository.RedisPubSub,
) *ChatWebsocketHandler {
	return &ChatWebsocketHandler{
		roomUC:    roomUC,
		messageUC: messageUC,
		pubSub:    pubSub,
	}
}

// HandleConnection entry point for a websocket connection
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenUser := conn.Locals(middlewares.TokenUserID)
	userID, ok := tokenUser.(int64)
	logger.Log.Info("websocket handle userID", zap.Int64("userID", userID), zap.String("ok", strconv.FormatBool(ok)))

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close", zap.Int64("userID", userID))
		conn.Close()
		cancel()
	}()

	// fiber answers close frames itself, SetCloseHandler taps into it
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		logger.Log.Infof("Received PONG:", appData)
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		logger.Log.Infof("Received PING:", appData)
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	// subscribe to the per-user channel for incoming messages
	channel := repository.UserChannel(userID)
	h.pubSub.Subscribe(ctxClose, channel, func(resp domain.WSResponse) {
		h.sendResponse(conn, resp)
	})

	go func() {
		for {
			select {
			case <-ticker.C:
				pingMsg := "ping message"
				if err := conn.WriteMessage(websocket.PingMessage, []byte(pingMsg)); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
				logger.Log.Infof("%d Ping sent", userID)
			case <-ctxClose.Done():
				logger.Log.Infof("Ping goroutine cancelled for user:", userID)
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Errorf("Connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctx, conn, userID, mt, message)
	}
}

func (h *ChatWebsocketHandler) execWebsocketAction(ctx context.Context, conn *websocket.Conn, userID int64, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, conn, userID, msg)
	default:
		h.sendError(conn, "unknown action")
	}
}

func (h *ChatWebsocketHandler) textMessageAction(ctx context.Context, conn *websocket.Conn, userID int64, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		log.Printf("json unmarshal error: %v", err)
		return
	}

	resp := domain.WSResponse{Action: req.Action, Success: false, Payload: map[string]interface{}{}}
	switch req.Action {
	case string(domain.ResolveRoom):
		room, err := h.roomUC.ResolveOrCreateRoom(ctx, userID, req.TargetID)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["room_name"] = room.Name
			resp.Payload["pair_key"] = room.PairKey
			if counterpart, err := h.roomUC.ResolveCounterpart(room, userID); err == nil {
				resp.Payload["counterpart_id"] = counterpart
			}
		}

	case string(domain.SendMessage):
		msgID, err := h.messageUC.Execute(ctx, userID, req.TargetID, req.Content)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["message_id"] = msgID
		}

	case string(domain.ListMessages):
		msgs, err := h.messageUC.ListMessagesForPair(ctx, userID, req.TargetID)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["messages"] = msgs
		}

	case string(domain.ListRooms):
		rooms, err := h.roomUC.ListRoomsFor(ctx, userID)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Success = true
			out := make([]map[string]interface{}, 0, len(rooms))
			for _, room := range rooms {
				entry := map[string]interface{}{
					"room_name": room.Name,
					"pair_key":  room.PairKey,
				}
				if counterpart, err := h.roomUC.ResolveCounterpart(&room, userID); err == nil {
					entry["counterpart_id"] = counterpart
				}
				out = append(out, entry)
			}
			resp.Payload["rooms"] = out
		}

	default:
		h.sendError(conn, "unknown message types ")
	}

	if resp.Error != "" {
		logger.Log.Error("websocket err ", zap.Int64("UserID", userID), zap.String("Action", req.Action), zap.String("err", resp.Error))
	}
	h.sendResponse(conn, resp)
}

// sendResponse write a JSON frame to the client
func (h *ChatWebsocketHandler) sendResponse(conn *websocket.Conn, resp domain.WSResponse) {
	b, _ := json.Marshal(resp)
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write message error:", err)
	}
}

func (h *ChatWebsocketHandler) sendError(conn *websocket.Conn, errorMsg string) {
	resp := domain.WSResponse{
		Action:  "error",
		Success: false,
		Payload: map[string]interface{}{
			"error": errorMsg,
		},
	}
	h.sendResponse(conn, resp)
}
