package notify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// Message is the JSON payload published for every notification.
type Message struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	brokers := []string{}
	for _, b := range strings.Split(csv, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewKafkaWriter builds a writer that keeps all messages of one recipient on the
// same partition.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// KafkaSink publishes notifications to a topic.
type KafkaSink struct {
	writer messageWriter
	clock  ports.Clock
}

func NewKafkaSink(writer messageWriter, clock ports.Clock) *KafkaSink {
	return &KafkaSink{writer: writer, clock: clock}
}

// SendNotification fails with ErrTransientInfra when the broker rejects the write.
func (s *KafkaSink) SendNotification(ctx context.Context, recipient, subject, body string) error {
	if strings.TrimSpace(recipient) == "" {
		return errs.NewValueIsRequiredError("recipient")
	}

	now := s.clock.Now()
	data, err := json.Marshal(Message{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		SentAt:    now,
	})
	if err != nil {
		return err
	}

	if err = s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(recipient),
		Value: data,
		Time:  now,
	}); err != nil {
		return errs.NewTransientInfraError("publish notification", err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
