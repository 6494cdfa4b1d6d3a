package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Producer interface {
	SendMessage(topic string, key string, message interface{}) error
	Close() error
}

type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

type kafkaProducer struct {
	writer  *kafka.Writer
	timeout time.Duration
}

// NewProducer connects to the first broker and makes sure the topic exists.
// When the broker cannot be reached it falls back to a producer that only logs.
func NewProducer(cfg Config) Producer {
	if len(cfg.Brokers) == 0 {
		logrus.Warn("Kafka brokers not configured, using mock producer")
		return NewMockProducer()
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.WriteTimeout)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		logrus.WithError(err).Warn("Kafka connection failed, using mock producer")
		return NewMockProducer()
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.WithError(err).WithField("topic", cfg.Topic).Info("Could not create topic (might already exist)")
	}

	logrus.WithField("brokers", cfg.Brokers).Info("Connected to Kafka")
	return &kafkaProducer{writer: writer, timeout: cfg.WriteTimeout}
}

func (p *kafkaProducer) SendMessage(topic string, key string, message interface{}) error {
	msg, err := newMessage(topic, key, message)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"topic": topic, "key": key}).Debug("Message sent")
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

func newMessage(topic, key string, message interface{}) (kafka.Message, error) {
	value, err := json.Marshal(message)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}, nil
}

// mockProducer stands in when Kafka is disabled or unreachable.
type mockProducer struct{}

func NewMockProducer() Producer {
	return &mockProducer{}
}

func (m *mockProducer) SendMessage(topic string, key string, message interface{}) error {
	logrus.WithFields(logrus.Fields{"topic": topic, "key": key}).Debug("MOCK: message not sent")
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}
