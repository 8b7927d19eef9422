package connector

import (
	"context"
	"net"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/session"
	"main/pkg/exception"
	"main/pkg/frame"
)

const (
	msgDisconnect     = "disconnect_"
	prefixStrategy    = "strategy_"
	prefixSignal      = "signal_"
	prefixStatus      = "status_"
	heartbeatInbound  = "ping"
	heartbeatResponse = "pong"
)

func (c *Connector) serveData(ctx context.Context) {
	for {
		select {
		case <-sys.Shutdown():
			return
		case <-ctx.Done():
			return
		default:
		}

		conn, err := c.dataServer.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
			}
			logs.Errorf("accept data connection: %v", err)
			continue
		}

		go c.handleData(conn)
	}
}

// handleData serves one admitted session: the first frame carries the
// session token from the auth step after its tag (connect_<token>),
// then the full strategy catalog the client subscribed to is pushed,
// then inbound frames are consumed until the client disconnects.
func (c *Connector) handleData(conn net.Conn) {
	payload, err := frame.Read(conn)
	if err != nil {
		conn.Close()
		return
	}

	parts := strings.SplitN(string(payload), "_", 2)
	if len(parts) != 2 || parts[1] == "" {
		frame.WriteString(conn, msgDisconnect)
		conn.Close()
		return
	}

	token := parts[1]
	client, ok := c.store.BySession(token)
	if !ok {
		logs.Errorf("attach data stream: %v", exception.ErrSessionNotFound)
		frame.WriteString(conn, msgDisconnect)
		conn.Close()
		return
	}

	c.bindConn(token, conn)
	client.SetActive(true)
	logs.Infof("client %s online", client.Login)

	for _, sum := range client.Strategies() {
		c.sendStrategy(conn, client, sum)
	}

	for {
		payload, err := frame.Read(conn)
		if err != nil {
			break
		}
		if c.handleClientFrame(conn, client, string(payload)) {
			break
		}
	}

	c.teardown(token, client)
}

func (c *Connector) teardown(token string, client *session.Client) {
	if !c.dropConn(token) {
		return
	}
	c.releaseSlot()
	client.ReleaseSession()
	logs.Infof("client %s offline", client.Login)
}

// handleClientFrame applies one inbound frame and reports whether the
// session should end.
func (c *Connector) handleClientFrame(conn net.Conn, client *session.Client, msg string) bool {
	switch {
	case msg == heartbeatInbound:
		frame.WriteString(conn, heartbeatResponse)
		return false

	case strings.HasPrefix(msg, msgDisconnect):
		return true

	case strings.HasPrefix(msg, prefixStatus):
		rest := strings.TrimPrefix(msg, prefixStatus)
		idx := strings.LastIndex(rest, "_")
		if idx <= 0 {
			return false
		}
		code, flag := rest[:idx], rest[idx+1:]
		active := flag == "true"
		if err := c.store.SetActivation(client.Login, code, active); err != nil {
			logs.Errorf("set activation %s/%s: %v", client.Login, code, err)
			return false
		}
		// Echo the applied state back as acknowledgement.
		frame.WriteString(conn, msg)
		return false

	default:
		logs.Errorf("unexpected frame from %s: %q", client.Login, msg)
		return false
	}
}

func (c *Connector) sendStrategy(conn net.Conn, client *session.Client, sum session.StrategySummary) {
	s := c.engine.Find(sum.Code)
	if s == nil {
		logs.Errorf("push %s to %s: %v", sum.Code, client.Login, exception.ErrStrategyNotFound)
		return
	}

	payload, err := s.MarshalFor(decimal.NewFromInt(int64(sum.TradeLimit)))
	if err != nil {
		logs.Errorf("marshal strategy %s: %v", sum.Code, err)
		return
	}
	if err := frame.WriteString(conn, prefixStrategy+string(payload)); err != nil {
		logs.Errorf("push strategy %s to %s: %v", sum.Code, client.Login, err)
	}
}

// pushSubscription delivers the strategy definition for a fresh
// subscription when the client already holds a live data connection.
func (c *Connector) pushSubscription(login, code string) {
	client, ok := c.store.ByLogin(login)
	if !ok || !client.IsActive() {
		return
	}
	conn, ok := c.lookupConn(client.SessionID())
	if !ok {
		return
	}
	if sum, found := client.Summary(code); found {
		c.sendStrategy(conn, client, sum)
	}
}
