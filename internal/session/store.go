package session

import (
	"math"
	"sync"

	"main/internal/market/enum"
	"main/pkg/exception"
)

type EventKind uint8

const (
	EventClientAdded EventKind = iota + 1
	EventDeposit
	EventPayment
	EventSubscribed
	EventUnsubscribed
	EventActivation
)

// ChangeEvent describes one ledger mutation. Listeners receive it
// after the store state has been updated.
type ChangeEvent struct {
	Kind       EventKind
	Login      string
	Code       string
	TradeLimit int
	Amount     int
	Active     bool
}

// Store owns all clients and their subscription ledgers.
type Store struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	order    []string
	onChange []func(ChangeEvent)
}

func NewStore() *Store {
	return &Store{clients: make(map[string]*Client)}
}

// OnChange registers a mutation listener. Not safe to call
// concurrently with mutations.
func (s *Store) OnChange(fn func(ChangeEvent)) {
	if fn == nil {
		return
	}
	s.onChange = append(s.onChange, fn)
}

func (s *Store) notify(ev ChangeEvent) {
	for _, fn := range s.onChange {
		fn(ev)
	}
}

// AddClient registers a new client. Logins are unique.
func (s *Store) AddClient(c *Client) error {
	if c == nil {
		return exception.ErrNilInstance
	}

	s.mu.Lock()
	if _, ok := s.clients[c.Login]; ok {
		s.mu.Unlock()
		return exception.ErrClientExists
	}
	s.clients[c.Login] = c
	s.order = append(s.order, c.Login)
	s.mu.Unlock()

	s.notify(ChangeEvent{Kind: EventClientAdded, Login: c.Login})
	return nil
}

// ByLogin returns the client with the login.
func (s *Store) ByLogin(login string) (*Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[login]
	return c, ok
}

// BySession returns the client bound to the session token.
func (s *Store) BySession(token string) (*Client, bool) {
	if len(token) == 0 {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.SessionID() == token {
			return c, true
		}
	}
	return nil, false
}

// Clients returns all clients in registration order.
func (s *Store) Clients() []*Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Client, 0, len(s.order))
	for _, login := range s.order {
		out = append(out, s.clients[login])
	}
	return out
}

// Authenticate checks credentials and binds the session token on
// success.
func (s *Store) Authenticate(login, password, token string) (*Client, error) {
	c, ok := s.ByLogin(login)
	if !ok || c.Password != password {
		return nil, exception.ErrBadCredentials
	}
	c.BindSession(token)
	return c, nil
}

// RecordDeposit adjusts the client's balance by amount.
func (s *Store) RecordDeposit(login string, amount int) error {
	c, ok := s.ByLogin(login)
	if !ok {
		return exception.ErrClientNotFound
	}

	c.mu.Lock()
	c.deposit += amount
	c.mu.Unlock()

	s.notify(ChangeEvent{Kind: EventDeposit, Login: login, Amount: amount})
	return nil
}

// RecordPayment adjusts the client's running payment total by amount.
func (s *Store) RecordPayment(login string, amount int) error {
	c, ok := s.ByLogin(login)
	if !ok {
		return exception.ErrClientNotFound
	}

	c.mu.Lock()
	c.payment += amount
	c.mu.Unlock()

	s.notify(ChangeEvent{Kind: EventPayment, Login: login, Amount: amount})
	return nil
}

// Commission is the daily charge for running a strategy with the
// given trade limit at the client's rate.
func Commission(tradeLimit int, percentage float64) int {
	return int(math.Ceil(float64(tradeLimit)*percentage/100)) + 1
}

// Subscribe purchases a strategy for the client: at most one summary
// per code, the commission must fit the deposit, and the charge moves
// from deposit to the payment total. Purchases start deactivated; the
// client turns delivery on with a status frame once connected.
func (s *Store) Subscribe(login string, venue enum.Venue, code string, tradeLimit int) (StrategySummary, error) {
	c, ok := s.ByLogin(login)
	if !ok {
		return StrategySummary{}, exception.ErrClientNotFound
	}

	c.mu.Lock()
	for _, sum := range c.strategies {
		if sum.Code == code {
			c.mu.Unlock()
			return StrategySummary{}, exception.ErrAlreadySubscribed
		}
	}

	fee := Commission(tradeLimit, c.percentage)
	if fee > c.deposit {
		c.mu.Unlock()
		return StrategySummary{}, exception.ErrInsufficientDeposit
	}

	sum := StrategySummary{
		Venue:      venue,
		Code:       code,
		TradeLimit: tradeLimit,
		Payment:    fee,
	}
	c.deposit -= fee
	c.payment += fee
	c.strategies = append(c.strategies, sum)
	c.mu.Unlock()

	s.notify(ChangeEvent{Kind: EventSubscribed, Login: login, Code: code, TradeLimit: tradeLimit, Amount: fee})
	return sum, nil
}

// Unsubscribe removes the strategy and reverses its charge from the
// payment total. The deposit is not refunded.
func (s *Store) Unsubscribe(login, code string) error {
	c, ok := s.ByLogin(login)
	if !ok {
		return exception.ErrClientNotFound
	}

	c.mu.Lock()
	idx := -1
	for i, sum := range c.strategies {
		if sum.Code == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return exception.ErrNotSubscribed
	}

	fee := c.strategies[idx].Payment
	c.payment -= fee
	c.strategies = append(c.strategies[:idx], c.strategies[idx+1:]...)
	c.mu.Unlock()

	s.notify(ChangeEvent{Kind: EventUnsubscribed, Login: login, Code: code, Amount: fee})
	return nil
}

// SetActivation toggles signal delivery for a purchased strategy.
func (s *Store) SetActivation(login, code string, active bool) error {
	c, ok := s.ByLogin(login)
	if !ok {
		return exception.ErrClientNotFound
	}
	if !c.SetActivation(code, active) {
		return exception.ErrNotSubscribed
	}

	s.notify(ChangeEvent{Kind: EventActivation, Login: login, Code: code, Active: active})
	return nil
}
