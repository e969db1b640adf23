// Package remote is the websocket client of the round adjudicator.
//
// Requests are JSON text frames carrying a numeric id; a single reader goroutine
// routes every response to the caller waiting on that id. Writes are serialized
// by a mutex since a websocket connection supports one concurrent writer.
package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lixenwraith/minetower/core"
)

var (
	ErrClosed       = errors.New("adjudicator connection closed")
	ErrNotConnected = errors.New("adjudicator not connected")
)

// Observer receives every successful response before its caller does
type Observer func(op Op, resp Response)

// Client is a request/response channel over one websocket connection
type Client struct {
	cfg  Config
	conn *websocket.Conn
	log  *zap.Logger

	nextID atomic.Uint64

	mu       sync.Mutex
	pending  map[uint64]pendingCall
	observer Observer

	writeMu sync.Mutex

	closeCh   chan struct{}
	closeOnce sync.Once
	closeErr  error
}

type pendingCall struct {
	op Op
	ch chan Response
}

// Dial connects to cfg.URL and starts the reader
func Dial(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = zap.NewNop()
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: cfg.DialTimeout,
		ReadBufferSize:   cfg.ReadBufferSize,
		WriteBufferSize:  cfg.WriteBufferSize,
	}
	dctx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	conn, _, err := dialer.DialContext(dctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.URL, err)
	}

	c := newClient(cfg, conn, log)
	go c.readLoop()

	log.Info("adjudicator connected", zap.String("url", cfg.URL))
	return c, nil
}

func newClient(cfg Config, conn *websocket.Conn, log *zap.Logger) *Client {
	return &Client{
		cfg:     cfg,
		conn:    conn,
		log:     log.Named("remote"),
		pending: make(map[uint64]pendingCall),
		closeCh: make(chan struct{}),
	}
}

// SetObserver installs the response observer, nil removes it
func (c *Client) SetObserver(fn Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// StartRound opens a round with the given bet on a rows x cols board
func (c *Client) StartRound(ctx context.Context, bet decimal.Decimal, rows, cols int) (Response, error) {
	return c.roundTrip(ctx, Request{
		Op:   OpStart,
		Bet:  bet.StringFixed(2),
		Rows: rows,
		Cols: cols,
	})
}

// ResolveCell asks whether (row, col) holds a mine
func (c *Client) ResolveCell(ctx context.Context, row, col int) (core.Outcome, error) {
	resp, err := c.roundTrip(ctx, newResolve(row, col))
	if err != nil {
		return core.Outcome{}, err
	}
	return core.Outcome{HitMine: resp.HitMine, Response: resp}, nil
}

// EndRound notifies the server that the round concluded
func (c *Client) EndRound(ctx context.Context, reason string) error {
	_, err := c.roundTrip(ctx, Request{Op: OpRoundEnd, Reason: reason})
	return err
}

// Collect cashes out the current reward
func (c *Client) Collect(ctx context.Context) (Response, error) {
	return c.roundTrip(ctx, Request{Op: OpCollect})
}

// Close shuts the connection; waiting callers get ErrClosed
// Safe to call multiple times
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()

	c.shutdown(ErrClosed)
	return nil
}

// Done is closed once the connection is gone
func (c *Client) Done() <-chan struct{} {
	return c.closeCh
}

func (c *Client) roundTrip(ctx context.Context, req Request) (Response, error) {
	req.ID = c.nextID.Add(1)
	ch := make(chan Response, 1)

	c.mu.Lock()
	select {
	case <-c.closeCh:
		c.mu.Unlock()
		return Response{}, fmt.Errorf("%s: %w", req.Op, c.err())
	default:
	}
	c.pending[req.ID] = pendingCall{op: req.Op, ch: ch}
	c.mu.Unlock()
	defer c.forget(req.ID)

	data, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("encode %s: %w", req.Op, err)
	}
	if err := c.write(data); err != nil {
		return Response{}, fmt.Errorf("send %s: %w", req.Op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	select {
	case resp := <-ch:
		if !resp.OK {
			return resp, &ServerError{Op: req.Op, Message: resp.Error}
		}
		return resp, nil
	case <-c.closeCh:
		return Response{}, fmt.Errorf("%s: %w", req.Op, c.err())
	case <-ctx.Done():
		return Response{}, fmt.Errorf("%s: %w", req.Op, ctx.Err())
	}
}

func (c *Client) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) forget(id uint64) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// readLoop routes responses until the connection fails
func (c *Client) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				c.shutdown(ErrClosed)
			} else {
				c.shutdown(err)
			}
			return
		}

		var resp Response
		if err := json.Unmarshal(data, &resp); err != nil {
			c.log.Warn("malformed response", zap.Error(err), zap.Int("bytes", len(data)))
			continue
		}
		c.deliver(resp)
	}
}

func (c *Client) deliver(resp Response) {
	c.mu.Lock()
	call, ok := c.pending[resp.ID]
	observer := c.observer
	c.mu.Unlock()

	if !ok {
		c.log.Debug("response without caller", zap.Uint64("id", resp.ID))
		return
	}
	// Observer runs first so callers see state derived from the response
	if resp.OK && observer != nil {
		observer(call.op, resp)
	}
	select {
	case call.ch <- resp:
	default:
		c.log.Warn("duplicate response dropped", zap.Uint64("id", resp.ID))
	}
}

func (c *Client) shutdown(cause error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closeErr = cause
		close(c.closeCh)
		c.mu.Unlock()
		_ = c.conn.Close()

		if !errors.Is(cause, ErrClosed) {
			c.log.Warn("adjudicator connection lost", zap.Error(cause))
		}
	})
}

func (c *Client) err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closeErr == nil || errors.Is(c.closeErr, ErrClosed) {
		return ErrClosed
	}
	return fmt.Errorf("%w: %v", ErrClosed, c.closeErr)
}
