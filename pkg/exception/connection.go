package exception

import "github.com/yanun0323/errors"

var (
	ErrConnectionClose = errors.New("connection closed")
	ErrFrameTooLarge   = errors.New("frame exceeds size limit")
)
