package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// ErrNoRequester is returned by request actions when no transport is configured.
var ErrNoRequester = errors.New("no request transport configured")

// Requester performs a request/reply round trip on a subject.
type Requester interface {
	Request(ctx context.Context, subject string, payload []byte) ([]byte, error)
}

// NATSRequester sends request actions over NATS.
type NATSRequester struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// ConnectNATS dials url with reconnect handling.
func ConnectNATS(url string, logger *zap.Logger) (*NATSRequester, error) {
	opts := []nats.Option{
		nats.Name("cmdc"),
		nats.Timeout(5 * time.Second),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	return &NATSRequester{conn: nc, logger: logger}, nil
}

// Request implements Requester.
func (r *NATSRequester) Request(ctx context.Context, subject string, payload []byte) ([]byte, error) {
	msg, err := r.conn.RequestWithContext(ctx, subject, payload)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", subject, err)
	}
	return msg.Data, nil
}

// Close closes the connection. Safe on a nil receiver.
func (r *NATSRequester) Close() {
	if r != nil && r.conn != nil {
		r.conn.Close()
	}
}
