package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"memecoin-client-go/internal/api"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	ErrNotConnected     = errors.New("websocket not connected")
	ErrAlreadyConnected = errors.New("websocket already connected")
)

const writeTimeout = 10 * time.Second

// HandlerFunc handles one dispatched message. Handlers run on the receive
// goroutine, so a slow handler delays the following messages.
type HandlerFunc func(ctx context.Context, msg Message)

// Observer is notified of connection and dispatch events
type Observer interface {
	MessageReceived(msgType string)
	MessageDropped(reason string)
	SetConnected(connected bool)
	Reconnecting()
}

type Options struct {
	URL              string
	Token            string
	UserAgent        string
	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration
	PingInterval     time.Duration

	// Reconnect redials after a dropped connection, re-authenticates and
	// replays the subscriptions sent so far.
	Reconnect         bool
	ReconnectDelay    time.Duration
	MaxReconnectDelay time.Duration
}

// Client holds one WebSocket connection and dispatches incoming messages to
// handlers registered by message type.
type Client struct {
	opts     Options
	logger   *zap.Logger
	observer Observer

	handlersMu sync.RWMutex
	handlers   map[string]HandlerFunc

	mu            sync.RWMutex
	conn          *websocket.Conn
	connected     bool
	running       bool
	closing       bool
	token         string
	subscriptions []subscribeMessage
	cancel        context.CancelFunc
	done          chan struct{}

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

func NewClient(opts Options, logger *zap.Logger, observer Observer) *Client {
	if opts.HandshakeTimeout <= 0 {
		opts.HandshakeTimeout = 10 * time.Second
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = time.Second
	}
	if opts.MaxReconnectDelay <= 0 {
		opts.MaxReconnectDelay = 60 * time.Second
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Client{
		opts:     opts,
		logger:   logger,
		observer: observer,
		handlers: make(map[string]HandlerFunc),
		token:    opts.Token,
	}
}

// OnMessage registers the handler for a message type, replacing any previous one
func (c *Client) OnMessage(msgType string, handler HandlerFunc) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	c.handlers[msgType] = handler
}

func (c *Client) handler(msgType string) (HandlerFunc, bool) {
	c.handlersMu.RLock()
	defer c.handlersMu.RUnlock()
	h, ok := c.handlers[msgType]
	return h, ok
}

// SetToken changes the token sent on the next (re)connect
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Done is closed when the receive loop has exited. It is nil before Connect.
func (c *Client) Done() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.done
}

// Connect dials the server, authenticates when a token is set and starts
// the background receive loop. ctx bounds the lifetime of that loop.
func (c *Client) Connect(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return c.IsConnected(), ErrAlreadyConnected
	}
	c.running = true
	c.closing = false
	c.mu.Unlock()

	conn, err := c.dial(ctx)
	if err != nil {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		c.logger.Error("WebSocket error", zap.String("url", c.opts.URL), zap.Error(err))
		return false, err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	if err := c.open(conn); err != nil {
		cancel()
		conn.Close()
		c.markDisconnected(conn)
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		close(done)
		return false, err
	}

	c.wg.Add(1)
	go c.run(loopCtx, conn, done)

	return c.IsConnected(), nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: c.opts.HandshakeTimeout,
	}
	header := make(http.Header)
	if c.opts.UserAgent != "" {
		header.Set("User-Agent", c.opts.UserAgent)
	}

	conn, _, err := dialer.DialContext(ctx, c.opts.URL, header)
	if err != nil {
		return nil, fmt.Errorf("unable to dial %s: %w", c.opts.URL, err)
	}
	return conn, nil
}

// open publishes conn as the current connection and sends the auth message
func (c *Client) open(conn *websocket.Conn) error {
	c.mu.Lock()
	c.conn = conn
	c.connected = true
	token := c.token
	c.mu.Unlock()

	c.observer.SetConnected(true)
	c.logger.Info("WebSocket connected", zap.String("url", c.opts.URL))

	if token != "" {
		if err := c.Send(authMessage{Type: TypeAuth, Token: token}); err != nil {
			return fmt.Errorf("unable to authenticate: %w", err)
		}
	}
	return nil
}

func (c *Client) markDisconnected(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
		c.connected = false
	}
	c.mu.Unlock()
	c.observer.SetConnected(false)
}

func (c *Client) run(ctx context.Context, conn *websocket.Conn, done chan struct{}) {
	defer c.wg.Done()
	defer close(done)
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	for {
		c.receive(ctx, conn)
		conn.Close()
		c.markDisconnected(conn)

		if ctx.Err() != nil || !c.opts.Reconnect || c.isClosing() {
			c.logger.Info("WebSocket disconnected")
			return
		}

		conn = c.reconnect(ctx)
		if conn == nil {
			c.logger.Info("WebSocket disconnected")
			return
		}
	}
}

func (c *Client) isClosing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closing
}

// receive reads frames until the connection fails or ctx is cancelled
func (c *Client) receive(ctx context.Context, conn *websocket.Conn) {
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	c.extendReadDeadline(conn)
	conn.SetPongHandler(func(string) error {
		c.extendReadDeadline(conn)
		return nil
	})

	if c.opts.PingInterval > 0 {
		go c.pingLoop(conn, stop)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && !c.isClosing() && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				c.logger.Warn("WebSocket error", zap.Error(err))
			}
			return
		}
		c.extendReadDeadline(conn)
		c.dispatch(ctx, data)
	}
}

func (c *Client) extendReadDeadline(conn *websocket.Conn) {
	if c.opts.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(c.opts.ReadTimeout))
	}
}

func (c *Client) pingLoop(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.writeMu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			c.writeMu.Unlock()
			if err != nil {
				c.logger.Warn("WebSocket ping failed", zap.Error(err))
				conn.Close()
				return
			}
		}
	}
}

func (c *Client) dispatch(ctx context.Context, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn("Failed to parse WebSocket message", zap.Error(err))
		c.observer.MessageDropped("parse")
		return
	}
	msg.Raw = data

	c.logger.Debug("Received message", zap.String("type", msg.Type))

	handler, ok := c.handler(msg.Type)
	if !ok {
		c.logger.Info("No handler for message type", zap.String("type", msg.Type))
		c.observer.MessageDropped("no_handler")
		return
	}
	c.observer.MessageReceived(msg.Type)

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Message handler panicked",
				zap.String("type", msg.Type),
				zap.Any("panic", r))
		}
	}()
	handler(ctx, msg)
}

func (c *Client) reconnect(ctx context.Context) *websocket.Conn {
	for retry := 0; ; retry++ {
		delay := api.CalculateBackoff(c.opts.ReconnectDelay, retry, c.opts.MaxReconnectDelay)
		c.observer.Reconnecting()
		c.logger.Warn("WebSocket reconnecting",
			zap.Int("retry", retry),
			zap.Duration("delay", delay))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		conn, err := c.dial(ctx)
		if err != nil {
			c.logger.Warn("WebSocket connection failed", zap.Int("retry", retry), zap.Error(err))
			continue
		}
		if err := c.open(conn); err != nil {
			c.logger.Warn("WebSocket reopen failed", zap.Error(err))
			conn.Close()
			c.markDisconnected(conn)
			continue
		}

		c.mu.RLock()
		subs := append([]subscribeMessage(nil), c.subscriptions...)
		c.mu.RUnlock()
		for _, sub := range subs {
			if err := c.Send(sub); err != nil {
				c.logger.Warn("Failed to replay subscription",
					zap.String("channel", sub.Channel),
					zap.Error(err))
			}
		}
		return conn
	}
}

// Send JSON-encodes v and writes it as a text frame. It is safe to call
// concurrently with the receive loop.
func (c *Client) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("unable to encode message: %w", err)
	}

	c.mu.RLock()
	conn, connected := c.conn, c.connected
	c.mu.RUnlock()
	if conn == nil || !connected {
		c.logger.Warn("WebSocket not connected")
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// Subscribe asks the server for a channel, optionally narrowed to one coin
func (c *Client) Subscribe(channel, coinId string) error {
	if channel == "" {
		return fmt.Errorf("channel is required")
	}
	sub := subscribeMessage{Type: TypeSubscribe, Channel: channel, CoinId: coinId}
	if err := c.Send(sub); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.subscriptions {
		if s == sub {
			return nil
		}
	}
	c.subscriptions = append(c.subscriptions, sub)

	c.logger.Info("Subscribed",
		zap.String("channel", channel),
		zap.String("coin_id", coinId))
	return nil
}

// Disconnect closes the connection and waits for the receive loop to exit
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.closing = true
	conn, cancel := c.conn, c.cancel
	c.mu.Unlock()

	if conn != nil {
		c.writeMu.Lock()
		err := conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		if err != nil {
			c.logger.Debug("Failed to send close frame", zap.Error(err))
		}
	}
	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
}

type nopObserver struct{}

func (nopObserver) MessageReceived(string) {}
func (nopObserver) MessageDropped(string)  {}
func (nopObserver) SetConnected(bool)      {}
func (nopObserver) Reconnecting()          {}
