package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"papertrade/internal/models"
)

// TradeEvent is the Kafka message value for an executed trade.
type TradeEvent struct {
	EventType   string             `json:"event_type"`
	Username    string             `json:"username"`
	Subject     string             `json:"subject"`
	Body        string             `json:"body"`
	Transaction models.Transaction `json:"transaction"`
	Timestamp   time.Time          `json:"timestamp"`
}

// messageWriter is the part of *kafka.Writer the notifier needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes confirmations to a topic, keyed by symbol.
type KafkaNotifier struct {
	writer messageWriter
	topic  string
}

// NewKafkaNotifier creates a notifier writing to topic on brokers.
func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 2 * time.Second,
		MaxAttempts:  3,
	}
	return &KafkaNotifier{writer: writer, topic: topic}
}

func (n *KafkaNotifier) TradeExecuted(ctx context.Context, username string, tx models.Transaction) error {
	c := Confirm(username, tx)
	event := TradeEvent{
		EventType:   "TRADE_EXECUTED",
		Username:    username,
		Subject:     c.Subject,
		Body:        c.Body,
		Transaction: tx,
		Timestamp:   time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(tx.Symbol),
		Value: data,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
