package connector

import (
	"context"
	"net"
	"strings"

	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/pkg/frame"
)

const (
	msgAuthSuccess = "auth_success"
	msgAuthFailure = "auth_failure"
)

// serveAuth admits sessions one slot at a time. The slot is acquired
// before Accept so that attempts beyond capacity queue in the listener
// backlog until a session ends, instead of being turned away.
func (c *Connector) serveAuth(ctx context.Context) {
	for {
		select {
		case <-sys.Shutdown():
			return
		case <-ctx.Done():
			return
		case c.slots <- struct{}{}:
		}

		conn, err := c.authServer.Accept()
		if err != nil {
			c.releaseSlot()
			select {
			case <-ctx.Done():
				return
			default:
			}
			logs.Errorf("accept auth connection: %v", err)
			continue
		}

		go c.handleAuth(conn)
	}
}

// handleAuth reads one credentials frame of the form
// login_password_token and answers with the auth verdict. On success
// the slot follows the bound session and frees at its teardown; any
// failure frees it here.
func (c *Connector) handleAuth(conn net.Conn) {
	defer conn.Close()

	payload, err := frame.Read(conn)
	if err != nil {
		c.releaseSlot()
		logs.Errorf("read auth frame: %v", err)
		return
	}

	parts := strings.SplitN(string(payload), "_", 3)
	if len(parts) != 3 || parts[2] == "" {
		c.releaseSlot()
		c.metrics.IncAuth(false)
		frame.WriteString(conn, msgAuthFailure)
		return
	}

	login, password, token := parts[0], parts[1], parts[2]
	if _, err := c.store.Authenticate(login, password, token); err != nil {
		c.releaseSlot()
		c.metrics.IncAuth(false)
		frame.WriteString(conn, msgAuthFailure)
		return
	}

	c.metrics.IncAuth(true)
	if err := frame.WriteString(conn, msgAuthSuccess); err != nil {
		logs.Errorf("write auth verdict to %s: %v", login, err)
	}
}
