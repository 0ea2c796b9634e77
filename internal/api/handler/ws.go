package handler

import (
	"log"
	"net/http"

	"askmego/backend/internal/livehub"
	"askmego/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Потрібно обмежити у production
		return true
	},
}

// ServeThreadSocket upgrades the connection and streams new thread
// messages for one request. Subject to the same visibility rules as the
// HTTP thread view: owner or admin only, blocked threads excluded.
func (h *Handler) ServeThreadSocket(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	allowed, err := h.Requests.CanView(id, CallerAddress(c), h.isAdmin(c))
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if !allowed {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ERROR: websocket upgrade failed for request %d: %v", id, err)
		return
	}

	client := &livehub.ThreadClient{
		ID:        uuid.NewString(),
		RequestID: id,
		Conn:      conn,
		Hub:       h.Hub,
		Send:      make(chan models.ThreadEvent, 16),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
