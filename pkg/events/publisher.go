package events

import (
	"Restaurant-POS-Backend/domain"
	"Restaurant-POS-Backend/pkg/logger"
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	OrdersExchange = "orders_topic"

	OrderCompleted     = "order.completed"
	OrderCancelled     = "order.cancelled"
	OrderVoidRequested = "order.void_requested"
	OrderVoidApproved  = "order.void_approved"
	OrderVoidRejected  = "order.void_rejected"
)

// Publisher emits order lifecycle events after the owning transaction commits.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event domain.OrderEvent) error
	Close()
}

type RabbitPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex
	log     *logger.Logger
}

func NewRabbitPublisher(url string, log *logger.Logger) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	err = channel.ExchangeDeclare(
		OrdersExchange, // name
		"topic",        // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Info("rabbitmq connected", "exchange", OrdersExchange)
	return &RabbitPublisher{
		conn:    conn,
		channel: channel,
		log:     log.WithComponent("events"),
	}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, event domain.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		OrdersExchange, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    event.OrderID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		})
	if err != nil {
		return err
	}

	p.log.Debug("event published", "routing_key", routingKey, "order_id", event.OrderID)
	return nil
}

func (p *RabbitPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, domain.OrderEvent) error { return nil }

func (NoopPublisher) Close() {}

// Recorder keeps published events in memory; tests assert against it.
type Recorder struct {
	mu     sync.Mutex
	Events []Recorded
}

type Recorded struct {
	RoutingKey string
	Event      domain.OrderEvent
}

func (r *Recorder) Publish(_ context.Context, routingKey string, event domain.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Recorded{RoutingKey: routingKey, Event: event})
	return nil
}

func (r *Recorder) Close() {}

func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		keys = append(keys, e.RoutingKey)
	}
	return keys
}
