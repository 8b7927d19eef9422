package session

import (
	"sync"

	"main/internal/market/enum"
)

// StrategySummary is one purchased strategy on a client: the code, the
// client's trade limit, the commission charged per day, and the
// client-controlled activation flag gating signal delivery.
type StrategySummary struct {
	Venue      enum.Venue
	Code       string
	TradeLimit int
	Payment    int
	Activated  bool
}

// Client is one paying subscriber: ledger data plus the live session
// binding. All mutation goes through its owning Store.
type Client struct {
	Login    string
	Password string

	mu         sync.Mutex
	deposit    int
	payment    int
	percentage float64
	strategies []StrategySummary
	sessionID  string
	active     bool
}

// NewClient creates a client with the given ledger values.
func NewClient(login, password string, deposit, payment int, percentage float64) *Client {
	return &Client{
		Login:      login,
		Password:   password,
		deposit:    deposit,
		payment:    payment,
		percentage: percentage,
	}
}

// Deposit returns the current balance.
func (c *Client) Deposit() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deposit
}

// Payment returns the running daily payment total.
func (c *Client) Payment() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payment
}

// Percentage returns the commission rate.
func (c *Client) Percentage() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.percentage
}

// Strategies returns a copy of the purchased strategy summaries in
// purchase order.
func (c *Client) Strategies() []StrategySummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]StrategySummary, len(c.strategies))
	copy(out, c.strategies)
	return out
}

// Summary returns the purchased summary for the code.
func (c *Client) Summary(code string) (StrategySummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.strategies {
		if s.Code == code {
			return s, true
		}
	}
	return StrategySummary{}, false
}

// SetActivation toggles delivery of the strategy's signals without
// touching the subscription itself.
func (c *Client) SetActivation(code string, active bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.strategies {
		if c.strategies[i].Code == code {
			c.strategies[i].Activated = active
			return true
		}
	}
	return false
}

// Delivers reports whether signals for the code reach this client:
// subscribed and activated.
func (c *Client) Delivers(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.strategies {
		if s.Code == code {
			return s.Activated
		}
	}
	return false
}

// BindSession attaches the session token from a successful auth.
func (c *Client) BindSession(token string) {
	c.mu.Lock()
	c.sessionID = token
	c.mu.Unlock()
}

// ReleaseSession drops the token and deactivates the client.
func (c *Client) ReleaseSession() {
	c.mu.Lock()
	c.sessionID = ""
	c.active = false
	c.mu.Unlock()
}

// SessionID returns the bound session token, empty when offline.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// SetActive flags the data-connection state.
func (c *Client) SetActive(active bool) {
	c.mu.Lock()
	c.active = active
	c.mu.Unlock()
}

// IsActive reports whether a data connection is live.
func (c *Client) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}
