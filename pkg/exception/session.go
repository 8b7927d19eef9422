package exception

import "github.com/yanun0323/errors"

var (
	ErrClientExists        = errors.New("client already registered")
	ErrClientNotFound      = errors.New("client not found")
	ErrBadCredentials      = errors.New("bad credentials")
	ErrSessionNotFound     = errors.New("session not found")
	ErrAlreadySubscribed   = errors.New("strategy already subscribed")
	ErrNotSubscribed       = errors.New("strategy not subscribed")
	ErrInsufficientDeposit = errors.New("insufficient deposit")
	ErrStrategyNotFound    = errors.New("strategy not found")
)
