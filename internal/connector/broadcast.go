package connector

import (
	"time"

	"github.com/yanun0323/logs"

	"main/pkg/frame"
)

// Broadcast delivers one serialized signal to every live session that
// subscribed to the strategy and keeps it activated. A write failure
// tears down only the failing session.
func (c *Connector) Broadcast(code string, payload []byte) {
	start := time.Now()
	msg := prefixSignal + string(payload)

	for _, client := range c.store.Clients() {
		if !client.IsActive() || !client.Delivers(code) {
			continue
		}

		token := client.SessionID()
		conn, ok := c.lookupConn(token)
		if !ok {
			continue
		}

		if err := frame.WriteString(conn, msg); err != nil {
			c.metrics.IncBroadcastErr()
			logs.Errorf("broadcast %s to %s: %v", code, client.Login, err)
			c.teardown(token, client)
		}
	}

	c.metrics.ObserveBroadcast(time.Since(start))
}
