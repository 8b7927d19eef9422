// Package connector exposes the signal engine to paying clients over
// two TCP listeners: an auth endpoint that validates credentials and
// admits sessions, and a data endpoint that pushes strategy
// definitions and live signals to admitted sessions.
package connector

import (
	"context"
	"encoding/json"
	"net"
	"sync"

	"github.com/yanun0323/logs"

	"main/internal/bus"
	"main/internal/obs"
	"main/internal/session"
	"main/internal/strategy"
	"main/pkg/tcp"
)

const (
	defaultCapacity  = 200
	defaultQueueSize = 1024
)

// Config holds the connector listen addresses and limits.
type Config struct {
	AuthAddr  string `json:"auth_addr"`
	DataAddr  string `json:"data_addr"`
	Capacity  int    `json:"capacity"`
	QueueSize int    `json:"queue_size"`
}

// Connector accepts client connections and fans signals out to them.
type Connector struct {
	store   *session.Store
	engine  *strategy.Engine
	queue   *bus.Queue
	metrics *obs.Metrics

	authServer *tcp.Server
	dataServer *tcp.Server
	slots      chan struct{}

	mu       sync.Mutex
	sessions map[string]net.Conn
}

// New builds a connector over the given store and engine.
func New(cfg Config, store *session.Store, engine *strategy.Engine, metrics *obs.Metrics) (*Connector, error) {
	authServer, err := tcp.NewServer(cfg.AuthAddr)
	if err != nil {
		return nil, err
	}
	dataServer, err := tcp.NewServer(cfg.DataAddr)
	if err != nil {
		return nil, err
	}

	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	return &Connector{
		store:      store,
		engine:     engine,
		queue:      bus.NewQueue(queueSize),
		metrics:    metrics,
		authServer: authServer,
		dataServer: dataServer,
		slots:      make(chan struct{}, capacity),
		sessions:   make(map[string]net.Conn),
	}, nil
}

// Start opens both listeners and begins serving until the context is
// done. Signals published by the engine from here on are queued for
// broadcast.
func (c *Connector) Start(ctx context.Context) error {
	if err := c.authServer.Listen(); err != nil {
		return err
	}
	if err := c.dataServer.Listen(); err != nil {
		c.authServer.Close()
		return err
	}

	c.engine.OnSignal(func(s *strategy.Strategy, sig strategy.Signal) {
		if sig.IsHeartbeat() {
			return
		}
		payload, err := json.Marshal(sig)
		if err != nil {
			logs.Errorf("marshal signal %s: %v", s.Code, err)
			return
		}
		if err := c.queue.TryPublish(bus.Event{Code: s.Code, Payload: payload}); err != nil {
			c.metrics.IncQueueDrop()
			logs.Errorf("queue signal %s: %v", s.Code, err)
		}
	})

	// Push fresh subscriptions to clients that are already connected.
	c.store.OnChange(func(ev session.ChangeEvent) {
		if ev.Kind != session.EventSubscribed {
			return
		}
		c.pushSubscription(ev.Login, ev.Code)
	})

	go c.serveAuth(ctx)
	go c.serveData(ctx)
	go c.queue.Run(ctx, func(ev bus.Event) {
		c.Broadcast(ev.Code, ev.Payload)
	})
	go func() {
		<-ctx.Done()
		c.Close()
	}()

	logs.Infof("connector listening, auth %s data %s", c.authServer.Addr(), c.dataServer.Addr())
	return nil
}

// Close stops both listeners and drops every live session.
func (c *Connector) Close() {
	c.authServer.Close()
	c.dataServer.Close()
	c.queue.Close()

	c.mu.Lock()
	for token, conn := range c.sessions {
		conn.Close()
		delete(c.sessions, token)
	}
	c.mu.Unlock()
}

func (c *Connector) bindConn(token string, conn net.Conn) {
	c.mu.Lock()
	if prev, ok := c.sessions[token]; ok {
		prev.Close()
	}
	c.sessions[token] = conn
	c.mu.Unlock()
}

func (c *Connector) lookupConn(token string) (net.Conn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conn, ok := c.sessions[token]
	return conn, ok
}

// dropConn unbinds the session stream, reporting whether it was still
// bound so concurrent teardowns settle on a single winner.
func (c *Connector) dropConn(token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	conn, ok := c.sessions[token]
	if !ok {
		return false
	}
	conn.Close()
	delete(c.sessions, token)
	return true
}

func (c *Connector) releaseSlot() {
	select {
	case <-c.slots:
	default:
	}
}
