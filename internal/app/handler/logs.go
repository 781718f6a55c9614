package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pranav06082004/Authen-X/internal/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type LogsHandler struct {
	logger *zap.Logger
}

func NewLogs(l *zap.Logger) *LogsHandler {
	return &LogsHandler{logger: l}
}

// HandleStreamLogs handles GET /api/admin/logs, upgrading to a websocket
// and streaming every log line until the client disconnects.
func (h *LogsHandler) HandleStreamLogs(res http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(res, req, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ch := logger.Instance.Subscribe()
	defer logger.Instance.Unsubscribe(ch)

	// Reads are only needed to observe the close handshake.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for msg := range ch {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			return
		}
	}
}
