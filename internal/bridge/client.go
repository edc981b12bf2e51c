package bridge

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	pkgLog "command-bridge/pkg/log"
)

// Client is one interactive websocket connection.
type Client struct {
	id          string
	remoteAddr  string
	connectedAt time.Time

	conn *websocket.Conn
	hub  *Hub

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(h *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		id:          uuid.NewString(),
		remoteAddr:  remoteAddr,
		connectedAt: h.now(),
		conn:        conn,
		hub:         h,
		send:        make(chan []byte, h.cfg.SendBuffer),
		done:        make(chan struct{}),
	}
}

func (c *Client) ID() string { return c.id }

// Done is closed once the client has disconnected.
func (c *Client) Done() <-chan struct{} { return c.done }

// Send queues data, waiting for buffer space until ctx ends or the client closes.
func (c *Client) Send(ctx context.Context, data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrClientClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend queues data without waiting.
func (c *Client) TrySend(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close unregisters the client and tears down the connection. Safe to call repeatedly.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hub.registry.Remove(c.id)
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

func (c *Client) sendMessage(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Send(ctx, data)
}

// readPump runs commands in arrival order and queues one reply per message.
func (c *Client) readPump(ctx context.Context) {
	defer c.Close()

	pongWait := c.hub.cfg.PongWait
	writeWait := c.hub.cfg.WriteWait

	c.conn.SetReadLimit(c.hub.cfg.MaxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	c.conn.SetPingHandler(func(appData string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return c.conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(writeWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.hub.l.Warnf(ctx, "internal.bridge.readPump: %s read error: %v", c.id, err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		reply := c.hub.dispatcher.Dispatch(ctx, data)
		if err := c.sendMessage(ctx, reply); err != nil {
			c.hub.l.Debugf(ctx, "internal.bridge.readPump: %s reply dropped: %v", c.id, err)
			return
		}
	}
}

// writePump is the only writer of data frames on the connection.
func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(c.hub.cfg.pingPeriod())
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	writeWait := c.hub.cfg.WriteWait
	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.hub.l.Debugf(ctx, "internal.bridge.writePump: %s write error: %v", c.id, err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

func (c *Client) logContext(parent context.Context) context.Context {
	return pkgLog.WithRequestID(parent, c.id)
}
