package http

import (
	"context"
	"sync"

	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// Connection is a registered websocket client's outbound queue
type Connection struct {
	ID   string
	Send chan ports.UpdateEvent
}

// ConnectionManager fans events out to websocket clients. Registration and
// broadcasts are serialized through Run; a client whose queue is full is dropped.
type ConnectionManager struct {
	connections map[string]*Connection
	broadcast   chan ports.UpdateEvent
	register    chan *Connection
	unregister  chan string
	mu          sync.Mutex
	done        chan struct{}
	doneOnce    sync.Once
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*Connection),
		broadcast:   make(chan ports.UpdateEvent, 256),
		register:    make(chan *Connection),
		unregister:  make(chan string),
		done:        make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is done
func (cm *ConnectionManager) Run(ctx context.Context) {
	defer cm.doneOnce.Do(func() { close(cm.done) })

	for {
		select {
		case <-ctx.Done():
			cm.CloseAll()
			return

		case conn := <-cm.register:
			cm.mu.Lock()
			cm.connections[conn.ID] = conn
			cm.mu.Unlock()

		case id := <-cm.unregister:
			cm.remove(id)

		case event := <-cm.broadcast:
			cm.mu.Lock()
			for id, conn := range cm.connections {
				select {
				case conn.Send <- event:
				default:
					close(conn.Send)
					delete(cm.connections, id)
				}
			}
			cm.mu.Unlock()
		}
	}
}

// Register adds a connection. It returns false once the manager has stopped.
func (cm *ConnectionManager) Register(conn *Connection) bool {
	select {
	case cm.register <- conn:
		return true
	case <-cm.done:
		return false
	}
}

// Unregister removes a connection and closes its queue
func (cm *ConnectionManager) Unregister(connID string) {
	select {
	case cm.unregister <- connID:
	case <-cm.done:
		cm.remove(connID)
	}
}

// Broadcast queues an event for every connection
func (cm *ConnectionManager) Broadcast(event ports.UpdateEvent) {
	select {
	case cm.broadcast <- event:
	case <-cm.done:
	}
}

// Count returns the number of registered connections
func (cm *ConnectionManager) Count() int {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return len(cm.connections)
}

// CloseAll closes every connection queue, which makes the write pumps send a close frame
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for id, conn := range cm.connections {
		close(conn.Send)
		delete(cm.connections, id)
	}
}

func (cm *ConnectionManager) remove(id string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, ok := cm.connections[id]; ok {
		delete(cm.connections, id)
		close(conn.Send)
	}
}
