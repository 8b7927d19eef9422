package tcp

import (
	"errors"
	"net"
	"time"
)

// ErrNilClient is returned when a nil client receiver is used.
var ErrNilClient = errors.New("tcp: nil client")

// Client dials TCP endpoints using a precomputed address.
type Client struct {
	addr    string
	timeout time.Duration
}

// NewClient creates a client for the provided host:port address.
func NewClient(addr string, timeout time.Duration) (*Client, error) {
	if addr == "" {
		return nil, ErrEmptyAddr
	}
	return &Client{addr: addr, timeout: timeout}, nil
}

// Addr returns the configured dial address.
func (c *Client) Addr() string {
	if c == nil {
		return ""
	}
	return c.addr
}

// Dial opens a TCP connection.
func (c *Client) Dial() (net.Conn, error) {
	if c == nil {
		return nil, ErrNilClient
	}
	if c.addr == "" {
		return nil, ErrEmptyAddr
	}
	if c.timeout > 0 {
		return net.DialTimeout("tcp", c.addr, c.timeout)
	}
	return net.Dial("tcp", c.addr)
}
