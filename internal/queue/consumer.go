package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Consumer reads both reservation queues and writes one audit entry per
// event.  Malformed messages are rejected without requeueing.
type Consumer struct {
	url   string
	log   *zap.Logger
	audit *zap.Logger
}

// NewConsumer returns a consumer for the broker at url.  Operational
// messages go to log; event entries go to audit.
func NewConsumer(url string, log, audit *zap.Logger) *Consumer {
	return &Consumer{url: url, log: log, audit: audit}
}

// NewAuditLogger returns a JSON zap logger appending to path, creating the
// parent directory when needed.
func NewAuditLogger(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Sampling = nil
	cfg.EncoderConfig.TimeKey = "logged_at"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// Run consumes until ctx is cancelled, reconnecting with exponential
// backoff capped at 30 seconds.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := dial(c.url, DialTimeout)
		if err != nil {
			c.log.Warn("booking consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return nil
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		c.log.Warn("booking consumer: loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return nil
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("booking consumer: set QoS failed", zap.Error(err))
	}
	if err := declareQueues(ch); err != nil {
		return err
	}
	booked, err := ch.Consume(QueueBooked, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", QueueBooked, err)
	}
	confirmed, err := ch.Consume(QueueConfirmed, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", QueueConfirmed, err)
	}
	c.log.Info("booking consumer: consuming", zap.Strings("queues", []string{QueueBooked, QueueConfirmed}))

	for {
		var (
			d  amqp.Delivery
			ok bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok = <-booked:
		case d, ok = <-confirmed:
		}
		if !ok {
			return errors.New("deliveries channel closed")
		}
		if err := c.handleMessage(d.Body); err != nil {
			c.log.Warn("booking consumer: handle message failed", zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
}

func (c *Consumer) handleMessage(body []byte) error {
	var ev ReservationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.ReservationID == 0 {
		return errors.New("event without reservation id")
	}
	fields := []zap.Field{
		zap.String("type", ev.Type),
		zap.Uint64("reservation_id", ev.ReservationID),
		zap.String("status", ev.Status),
		zap.String("amount", ev.Amount.StringFixed(2)),
		zap.Time("occurred_at", ev.OccurredAt),
	}
	switch ev.Type {
	case QueueBooked:
		fields = append(fields,
			zap.Uint64("payment_id", ev.PaymentID),
			zap.String("username", ev.Username),
			zap.String("room_type", ev.RoomType),
			zap.String("check_in", ev.CheckIn),
			zap.String("check_out", ev.CheckOut),
			zap.Int("guests", ev.Guests),
			zap.String("payment_method", ev.PaymentMethod))
		c.audit.Info("reservation booked", fields...)
	case QueueConfirmed:
		fields = append(fields, zap.String("confirmed_by", ev.ConfirmedBy))
		c.audit.Info("reservation confirmed", fields...)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
