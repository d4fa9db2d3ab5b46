package kafkabroker

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

const (
	defaultWriteTimeout = 5 * time.Second
	batchTimeout        = 10 * time.Millisecond
)

type ProducerConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(cfg ProducerConfig) *Producer {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           timeout,
		BatchTimeout:           batchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return &Producer{
		writer: w,
		topic:  cfg.Topic,
	}
}

func (p *Producer) SendMessage(ctx context.Context, key, value []byte) error {
	msg := kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	}
	err := p.writer.WriteMessages(ctx, msg)
	if err != nil {
		log.WithField("topic", p.topic).Errorf("Failed to send message: %v", err)
		return err
	}
	log.Debugf("Message sent: topic=%s key=%s", p.topic, string(key))
	return nil
}

func (p *Producer) Close() error {
	log.Info("Closing Kafka producer...")
	return p.writer.Close()
}
