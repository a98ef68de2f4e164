package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tieubaoca/rag-be/types"
)

const (
	wsReadLimit    = 512 * 1024
	wsReadDeadline = 60 * time.Second
)

// WebSocketService streams RAG answers over a websocket connection.
type WebSocketService struct {
	rag      *RAGService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewWebSocketService(rag *RAGService, logger *zap.Logger) *WebSocketService {
	return &WebSocketService{
		rag: rag,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
		logger: logger,
	}
}

// HandleChat upgrades the connection and answers chat requests until the
// client disconnects. Each answer is streamed as chat fragments followed
// by a done message.
func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		return nil
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))

		var req types.WebsocketRequest
		if err := json.Unmarshal(message, &req); err != nil {
			s.writeError(conn, "invalid request")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketChat:
			s.handleChatRequest(ctx, conn, req)
		case types.TypeWebsocketPing:
			if err := conn.WriteJSON(types.WebSocketResponse{Type: types.TypeWebsocketPong}); err != nil {
				s.logger.Warn("websocket write failed", zap.Error(err))
			}
		default:
			s.writeError(conn, "unknown message type")
		}
	}
}

func (s *WebSocketService) handleChatRequest(ctx context.Context, conn *websocket.Conn, req types.WebsocketRequest) {
	payloadBytes, err := json.Marshal(req.Payload)
	if err != nil {
		s.writeError(conn, "invalid payload")
		return
	}
	var payload types.WebSocketChatPayload
	if err := json.Unmarshal(payloadBytes, &payload); err != nil {
		s.writeError(conn, "invalid payload")
		return
	}

	err = s.rag.AnswerStream(ctx, payload.Question, func(fragment string) {
		if fragment == "" {
			return
		}
		if writeErr := conn.WriteJSON(types.WebSocketResponse{
			Type:    types.TypeWebsocketChat,
			Payload: types.WebSocketChatResponse{Message: fragment},
		}); writeErr != nil {
			s.logger.Warn("websocket write failed", zap.Error(writeErr))
		}
	})
	if err != nil {
		s.logger.Error("streaming answer failed", zap.Error(err))
		s.writeError(conn, "failed to generate answer")
		return
	}

	if err := conn.WriteJSON(types.WebSocketResponse{Type: types.TypeWebsocketDone}); err != nil {
		s.logger.Warn("websocket write failed", zap.Error(err))
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebSocketChatResponse{Message: message},
	}); err != nil {
		s.logger.Warn("websocket write failed", zap.Error(err))
	}
}
