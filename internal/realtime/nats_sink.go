package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSSink publishes events on per-user subjects. Connected clients subscribe
// to user.<id>.> through the realtime gateway; with nobody listening the
// message is dropped.
type NATSSink struct {
	conn *nats.Conn
}

func NewNATSSink(conn *nats.Conn) *NATSSink {
	return &NATSSink{conn: conn}
}

func (s *NATSSink) Push(_ context.Context, targetUserID uint, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", event, err)
	}
	return s.conn.Publish(fmt.Sprintf("user.%d.%s", targetUserID, event), data)
}
