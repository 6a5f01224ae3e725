package websocket

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Sahanadeepthi-A/Live-Chat-Room/domain"
	"github.com/Sahanadeepthi-A/Live-Chat-Room/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 256
)

// Conn wraps a websocket connection with a buffered outbound queue and the
// read/write pumps. Inbound frames are decoded into event envelopes and fed
// to the handler; the dispatcher owns fan-out back to connections.
type Conn struct {
	id         string
	identity   string
	ws         *websocket.Conn
	send       chan []byte
	dispatcher *Dispatcher
	handler    domain.EventHandler
}

func newConn(id, identity string, ws *websocket.Conn, d *Dispatcher, h domain.EventHandler) *Conn {
	return &Conn{
		id:         id,
		identity:   identity,
		ws:         ws,
		send:       make(chan []byte, sendBuffer),
		dispatcher: d,
		handler:    h,
	}
}

func (c *Conn) ID() string { return c.id }

func (c *Conn) Send(data []byte) error {
	select {
	case c.send <- data:
		return nil
	default:
		return websocket.ErrCloseSent
	}
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

// Start registers the connection before announcing it, so the presence
// broadcast triggered by HandleConnect reaches this connection too.
func (c *Conn) Start() {
	c.dispatcher.Add(c)
	c.handler.HandleConnect(c.id, c.identity)
	go c.writePump()
	go c.readPump()
}

func (c *Conn) readPump() {
	defer func() {
		c.dispatcher.Remove(c.id)
		c.handler.HandleDisconnect(c.id)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("read error", "connId", c.id, "error", err)
			}
			return
		}

		var env domain.Envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Event == "" {
			slog.Warn("malformed frame dropped", "connId", c.id, "error", err)
			continue
		}

		metrics.EventsTotal.WithLabelValues(eventLabel(env.Event)).Inc()
		c.handler.HandleEvent(c.id, env.Event, env.Data)
	}
}

// eventLabel folds client-chosen event names into a fixed label set.
func eventLabel(event string) string {
	switch event {
	case domain.EventJoin, domain.EventLeave, domain.EventMessage:
		return event
	}
	return "other"
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
