package broadcast

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var errSendBufferFull = errors.New("send buffer full")
var errConnClosed = errors.New("connection closed")

// WSConn adapts a websocket to the hub's Conn interface. Writes go through
// a buffered channel drained by a single writer goroutine, so one slow
// client never stalls delivery to the others: when the buffer is full the
// send fails and the hub drops the connection.
type WSConn struct {
	ws           *websocket.Conn
	out          chan []byte
	done         chan struct{}
	closeOnce    sync.Once
	writeTimeout time.Duration
}

func NewWSConn(ws *websocket.Conn, sendBuffer int, writeTimeout time.Duration) *WSConn {
	c := &WSConn{
		ws:           ws,
		out:          make(chan []byte, sendBuffer),
		done:         make(chan struct{}),
		writeTimeout: writeTimeout,
	}
	go c.writePump()
	return c
}

func (c *WSConn) Send(payload []byte) error {
	select {
	case <-c.done:
		return errConnClosed
	case c.out <- payload:
		return nil
	default:
		return errSendBufferFull
	}
}

func (c *WSConn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

func (c *WSConn) writePump() {
	defer c.ws.Close()

	for {
		select {
		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case payload := <-c.out:
			c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.Close()
				return
			}
		}
	}
}
