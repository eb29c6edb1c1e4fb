package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

func TestConnectionManager(t *testing.T) {
	t.Run("register and unregister connection", func(t *testing.T) {
		cm := NewConnectionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go cm.Run(ctx)

		conn := &Connection{ID: "test-conn", Send: make(chan ports.UpdateEvent, 1)}
		require.True(t, cm.Register(conn))
		assert.Eventually(t, func() bool { return cm.Count() == 1 }, time.Second, 5*time.Millisecond)

		cm.Unregister("test-conn")
		assert.Eventually(t, func() bool { return cm.Count() == 0 }, time.Second, 5*time.Millisecond)

		_, ok := <-conn.Send
		assert.False(t, ok, "unregister closes the queue")
	})

	t.Run("broadcast to connections", func(t *testing.T) {
		cm := NewConnectionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go cm.Run(ctx)

		receivers := make([]chan ports.UpdateEvent, 3)
		for i := range receivers {
			receivers[i] = make(chan ports.UpdateEvent, 1)
			require.True(t, cm.Register(&Connection{ID: string(rune('a' + i)), Send: receivers[i]}))
		}

		cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload, Timestamp: time.Now()})

		for _, ch := range receivers {
			select {
			case event := <-ch:
				assert.Equal(t, ports.EventTypeReload, event.Type)
			case <-time.After(time.Second):
				t.Fatal("broadcast not delivered")
			}
		}
	})

	t.Run("slow client is dropped", func(t *testing.T) {
		cm := NewConnectionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go cm.Run(ctx)

		slow := &Connection{ID: "slow", Send: make(chan ports.UpdateEvent)}
		require.True(t, cm.Register(slow))

		cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})
		assert.Eventually(t, func() bool { return cm.Count() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("close all", func(t *testing.T) {
		cm := NewConnectionManager()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go cm.Run(ctx)

		conn := &Connection{ID: "c", Send: make(chan ports.UpdateEvent, 1)}
		require.True(t, cm.Register(conn))
		assert.Eventually(t, func() bool { return cm.Count() == 1 }, time.Second, 5*time.Millisecond)

		cm.CloseAll()
		assert.Equal(t, 0, cm.Count())
		_, ok := <-conn.Send
		assert.False(t, ok)
	})

	t.Run("stopped manager does not block callers", func(t *testing.T) {
		cm := NewConnectionManager()
		ctx, cancel := context.WithCancel(context.Background())
		stopped := make(chan struct{})
		go func() {
			cm.Run(ctx)
			close(stopped)
		}()
		cancel()
		<-stopped

		assert.False(t, cm.Register(&Connection{ID: "late", Send: make(chan ports.UpdateEvent)}))
		cm.Unregister("late")
		cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})
	})
}
