package endpoints

import (
	"net/http"

	"fieldtrack"
	"fieldtrack/internal/api/handler/middleware"
	"fieldtrack/internal/api/service"
	ws2 "fieldtrack/internal/api/ws"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, you should validate the origin
		return true
	},
}

type wsHandler struct {
	hub    *ws2.Hub
	ingest *service.LocationService
	logger zerolog.Logger
	config fieldtrack.AppConfig
}

func newWSHandler(hub *ws2.Hub) *wsHandler {
	return &wsHandler{
		hub:    hub,
		ingest: service.NewLocationService(),
		logger: fieldtrack.Logger,
		config: fieldtrack.GetConfig(),
	}
}

// WSHandler sets up the websocket routes. The auth middleware accepts the
// token as a `?token=` query parameter for the upgrade request.
func WSHandler(router *graceful.Graceful, hub *ws2.Hub) {
	h := newWSHandler(hub)

	wsRoutes := router.Group("/api/v1/ws")
	wsRoutes.Use(middleware.AuthMiddleware(h.config))
	{
		wsRoutes.GET("", h.handleWebSocket)
		wsRoutes.GET("/stats", h.getStats)
	}
}

func (slf *wsHandler) handleWebSocket(c *gin.Context) {
	userID, _ := c.Get("userID")
	employeeID, _ := userID.(uint)

	username, exists := c.Get("username")
	if !exists {
		username = ""
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to upgrade to WebSocket")
		return
	}

	connID := uuid.New().String()

	client := ws2.NewClient(
		connID,
		employeeID,
		username.(string),
		slf.hub,
		conn,
		slf.ingest,
		slf.logger,
	)

	slf.hub.Register(client)

	slf.logger.Info().
		Str("connId", connID).
		Uint("employeeId", employeeID).
		Msg("WebSocket connection established")

	go client.WritePump()
	go client.ReadPump()
}

func (slf *wsHandler) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"clients":     slf.hub.ClientCount(),
		"connections": slf.hub.ConnectionIDs(),
	})
}
