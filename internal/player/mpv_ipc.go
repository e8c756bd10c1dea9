package player

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/PizzaHomicide/hookline/internal/log"
)

var errIPCClosed = errors.New("mpv connection closed")

// MPVMessage is a line received from mpv: either an event or the response to a command
type MPVMessage struct {
	Event     string          `json:"event,omitempty"`
	ID        int             `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	RequestID int             `json:"request_id,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// MPVIPCClient speaks mpv's line delimited JSON protocol over a connected socket or pipe
type MPVIPCClient struct {
	conn    net.Conn
	timeout time.Duration

	writeMu sync.Mutex

	mu      sync.Mutex
	nextID  int
	pending map[int]chan MPVMessage
	closed  bool

	events chan MPVMessage
	done   chan struct{}
}

// NewMPVIPCClient wraps an established connection and starts reading from it
func NewMPVIPCClient(conn net.Conn, timeout time.Duration) *MPVIPCClient {
	c := &MPVIPCClient{
		conn:    conn,
		timeout: timeout,
		nextID:  1,
		pending: make(map[int]chan MPVMessage),
		events:  make(chan MPVMessage, 100),
		done:    make(chan struct{}),
	}
	go c.readMessages()
	return c
}

// Events returns the channel of mpv events.  It is closed when the connection drops.
func (c *MPVIPCClient) Events() <-chan MPVMessage {
	return c.events
}

// Done is closed once the connection has dropped
func (c *MPVIPCClient) Done() <-chan struct{} {
	return c.done
}

// Command sends a command and waits for mpv's response, returning its data
func (c *MPVIPCClient) Command(ctx context.Context, args ...interface{}) (json.RawMessage, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, errIPCClosed
	}
	id := c.nextID
	c.nextID++
	respCh := make(chan MPVMessage, 1)
	c.pending[id] = respCh
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	data, err := json.Marshal(map[string]interface{}{
		"command":    args,
		"request_id": id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}
	data = append(data, '\n')

	log.Trace("Sending mpv command", "data", string(data))

	c.writeMu.Lock()
	_, err = c.conn.Write(data)
	c.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to send command: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	select {
	case resp := <-respCh:
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv %v: %s", args[0], resp.Error)
		}
		return resp.Data, nil
	case <-c.done:
		return nil, errIPCClosed
	case <-ctx.Done():
		return nil, fmt.Errorf("mpv %v: %w", args[0], ctx.Err())
	}
}

// GetFloat reads a numeric property
func (c *MPVIPCClient) GetFloat(ctx context.Context, name string) (float64, error) {
	data, err := c.Command(ctx, "get_property", name)
	if err != nil {
		return 0, err
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return 0, fmt.Errorf("property %s is not a number: %w", name, err)
	}
	return value, nil
}

// ObserveProperty asks mpv to send property-change events for name
func (c *MPVIPCClient) ObserveProperty(ctx context.Context, id int, name string) error {
	_, err := c.Command(ctx, "observe_property", id, name)
	return err
}

// Close closes the connection.  The reader then stops and closes the events channel.
func (c *MPVIPCClient) Close() error {
	return c.conn.Close()
}

func (c *MPVIPCClient) readMessages() {
	defer func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
		close(c.events)
	}()

	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		log.Trace("Raw mpv message", "data", string(line))

		var msg MPVMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			log.Warn("Failed to unmarshal mpv message", "error", err)
			continue
		}

		if msg.Event == "" {
			c.mu.Lock()
			respCh, ok := c.pending[msg.RequestID]
			c.mu.Unlock()
			if ok {
				respCh <- msg
			}
			continue
		}

		select {
		case c.events <- msg:
		default:
			// A stalled consumer must not block command responses
			log.Warn("Dropping mpv event, consumer is behind", "event", msg.Event)
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warn("Error reading from mpv", "error", err)
	}
	log.Debug("mpv reader stopped")
}
