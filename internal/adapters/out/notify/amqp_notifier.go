package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pancakehouse/internal/core/domain/model/kernel"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventPartnerAssigned = "DeliveryPartnerAssigned"
	EventDelivered       = "Delivered"

	publishTimeout = 3 * time.Second
)

// Publisher is the part of *amqp.Channel the notifier needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Event is the JSON body published for every notification.
type Event struct {
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	Owner     string    `json:"owner"`
	Timestamp time.Time `json:"timestamp"`
}

// AMQPNotifier publishes notifications to a fanout exchange. The owner name is
// used as routing key so direct or topic bindings can filter per user.
type AMQPNotifier struct {
	ch       Publisher
	conn     *amqp.Connection
	exchange string
	now      func() time.Time
	logger   *slog.Logger
}

// NewAMQPNotifier wraps an open channel. The exchange must already exist.
func NewAMQPNotifier(ch Publisher, exchange string, logger *slog.Logger) *AMQPNotifier {
	return &AMQPNotifier{
		ch:       ch,
		exchange: exchange,
		now:      time.Now,
		logger:   logger.With("component", "amqp_notifier"),
	}
}

// DialAMQPNotifier connects to url, declares exchange as a durable fanout
// exchange and returns a notifier owning the connection.
func DialAMQPNotifier(url, exchange string, logger *slog.Logger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	n := NewAMQPNotifier(ch, exchange, logger)
	n.conn = conn
	return n, nil
}

func (n *AMQPNotifier) NotifyPartnerAssigned(ctx context.Context, owner string, orderID kernel.UUID) error {
	return n.publish(ctx, EventPartnerAssigned, owner, orderID)
}

func (n *AMQPNotifier) NotifyDelivered(ctx context.Context, owner string, orderID kernel.UUID) error {
	return n.publish(ctx, EventDelivered, owner, orderID)
}

// Close closes the channel and, when dialed by DialAMQPNotifier, the connection.
func (n *AMQPNotifier) Close() error {
	err := n.ch.Close()
	if n.conn != nil {
		err = errors.Join(err, n.conn.Close())
	}
	return err
}

func (n *AMQPNotifier) publish(ctx context.Context, eventType, owner string, orderID kernel.UUID) error {
	body, err := json.Marshal(Event{
		EventType: eventType,
		OrderID:   orderID.String(),
		Owner:     owner,
		Timestamp: n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", eventType, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = n.ch.PublishWithContext(pubCtx, n.exchange, owner, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         eventType,
		MessageId:    orderID.String(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	n.logger.DebugContext(ctx, "Notification published", "event", eventType, "order_id", orderID.String())
	return nil
}
