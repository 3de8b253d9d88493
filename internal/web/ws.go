package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/vizvault/internal/export"
	"github.com/san-kum/vizvault/internal/geom"
	"github.com/san-kum/vizvault/internal/params"
	"github.com/san-kum/vizvault/internal/surface"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

var errHangup = errors.New("web: client hung up")

// clientMessage is what a browser sends: either one parameter assignment or
// a reset to defaults.
type clientMessage struct {
	Name  string       `json:"name,omitempty"`
	Value params.Value `json:"value"`
	Reset bool         `json:"reset,omitempty"`
}

// client is one websocket connection. Its session is touched only by the
// stream goroutine; readPump hands messages over through inbox.
type client struct {
	conn    *websocket.Conn
	send    chan []byte
	inbox   chan clientMessage
	session *surface.Session
	fps     int
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := surface.Open(s.reg, s.loader, r.PathValue("slug"))
	if err != nil {
		writeFallback(w, err)
		return
	}
	defer sess.Close()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] websocket upgrade error: %v", err)
		return
	}

	c := &client{
		conn:    conn,
		send:    make(chan []byte, 16),
		inbox:   make(chan clientMessage, 32),
		session: sess,
		fps:     s.opts.FPS,
	}

	s.mu.Lock()
	s.clients[c] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
	}()

	log.Printf("[web] stream opened: %s", sess.Descriptor().Slug)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error { return c.readPump(ctx) })
	g.Go(func() error { return c.writePump(ctx) })
	g.Go(func() error { return c.stream(ctx) })
	if err := g.Wait(); err != nil && !errors.Is(err, errHangup) && !errors.Is(err, context.Canceled) {
		log.Printf("[web] stream error: %v", err)
	}
	log.Printf("[web] stream closed: %s", sess.Descriptor().Slug)
}

func (c *client) readPump(ctx context.Context) error {
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[web] websocket read error: %v", err)
			}
			return errHangup
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reply(map[string]string{"error": fmt.Sprintf("bad message: %v", err)})
			continue
		}
		select {
		case c.inbox <- msg:
		case <-ctx.Done():
			return nil
		}
	}
}

// writePump is the only writer of data frames on the connection.
func (c *client) writePump(ctx context.Context) error {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return nil
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return errHangup
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return errHangup
			}
		}
	}
}

// stream ticks the session's loop and queues one JSON frame per tick.
// Frames are dropped while the writer is behind.
func (c *client) stream(ctx context.Context) error {
	d := c.session.Descriptor()
	start := time.Now()
	return c.session.Loop().Run(ctx, c.fps, func(f *geom.Frame) error {
		data, err := json.Marshal(export.NewExportData(d.Slug, d.Title, time.Since(start).Seconds(), c.session.Params(), f))
		if err != nil {
			return err
		}
		select {
		case c.send <- data:
		default:
		}
		c.drain()
		return nil
	})
}

// drain applies every pending client message to the session.
func (c *client) drain() {
	for {
		select {
		case msg := <-c.inbox:
			if err := c.apply(msg); err != nil {
				c.reply(map[string]string{"error": err.Error()})
			}
		default:
			return
		}
	}
}

func (c *client) apply(msg clientMessage) error {
	if msg.Reset {
		c.session.Reset()
		return nil
	}
	if spec, ok := c.session.Descriptor().Spec(msg.Name); ok && spec.Kind.Known() {
		if err := params.Validate(spec, msg.Value); errors.Is(err, params.ErrKindMismatch) {
			return err
		}
	}
	return c.session.Set(msg.Name, msg.Value)
}

func (c *client) reply(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	case <-time.After(writeWait):
	}
}
