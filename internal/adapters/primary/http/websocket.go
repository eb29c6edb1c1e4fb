package http

import (
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Preview clients only ever send control frames
	maxMessageSize = 512
)

// WebSocketClient is one connected preview page
type WebSocketClient struct {
	id      string
	conn    *websocket.Conn
	send    chan ports.UpdateEvent
	manager *ConnectionManager
	logger  *slog.Logger
}

func (s *Server) createUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.isValidOrigin,
	}
}

// handleWebSocket upgrades the request and registers the client for reload events
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.createUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := &WebSocketClient{
		id:      uuid.New().String(),
		conn:    conn,
		send:    make(chan ports.UpdateEvent, 256),
		manager: s.connMgr,
	}
	client.logger = s.logger.With(slog.String("client", client.id))

	// Queued before registration so no broadcast can close send first
	data := map[string]interface{}{"message": "Connected to deckgen preview"}
	if deck := s.GetDeck(); deck != nil {
		data["slides"] = deck.SlideCount()
	}
	client.send <- ports.UpdateEvent{Type: ports.EventTypeConnected, Timestamp: time.Now(), Data: data}

	if !s.connMgr.Register(&Connection{ID: client.id, Send: client.send}) {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so pongs and close frames are processed
func (c *WebSocketClient) readPump() {
	defer func() {
		c.manager.Unregister(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket connection error", slog.Any("error", err))
			}
			return
		}
		c.logger.Debug("ignoring client message", slog.Int("bytes", len(message)))
	}
}

// writePump pumps events and pings to the connection
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// isValidOrigin accepts same-origin requests, loopback and private network
// hosts, and the configured CORS origins
func (s *Server) isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		s.logger.Warn("websocket origin rejected", slog.String("origin", origin), slog.Any("error", err))
		return false
	}

	if originURL.Host == r.Host || isLocalHost(originURL.Hostname()) {
		return true
	}

	for _, allowed := range s.config.GetCORSOrigins() {
		if allowed == "*" || allowed == originURL.Scheme+"://"+originURL.Host {
			return true
		}
		// https://*.example.com
		if i := strings.Index(allowed, "*."); i >= 0 && strings.HasSuffix(originURL.Hostname(), allowed[i+1:]) {
			return true
		}
	}

	s.logger.Warn("websocket origin rejected", slog.String("origin", origin))
	return false
}

func isLocalHost(hostname string) bool {
	if hostname == "localhost" {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && (ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified())
}
