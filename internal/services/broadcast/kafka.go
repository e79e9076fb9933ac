package broadcast

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iwtcode/machineMonitor/internal/config"
	"github.com/iwtcode/machineMonitor/internal/domain/models"
	"github.com/iwtcode/machineMonitor/internal/middleware/logging"

	"github.com/segmentio/kafka-go"
)

// KafkaProducer публикует состояние каждого станка отдельным сообщением с ключом machineID,
// чтобы сообщения одного станка попадали в одну партицию
type KafkaProducer struct {
	writer *kafka.Writer
	logger *logging.Logger
}

// NewKafkaProducer создает новый экземпляр продюсера Kafka.
// Writer асинхронный: ошибки доставки приходят в onFailure, опрос не ждет брокера.
func NewKafkaProducer(cfg *config.AppConfig, logger *logging.Logger, onFailure func(sink string)) *KafkaProducer {
	p := &KafkaProducer{logger: logger.WithPrefix("KAFKA")}
	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Broadcast.KafkaBroker),
		Topic:        cfg.Broadcast.KafkaTopic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err == nil {
				return
			}
			p.logger.Warn("Failed to deliver snapshot to Kafka", "messages", len(messages), "error", err)
			if onFailure != nil {
				onFailure(p.Name())
			}
		},
	}
	return p
}

func (p *KafkaProducer) Name() string { return "kafka" }

// Publish отправляет сообщения в Kafka
func (p *KafkaProducer) Publish(ctx context.Context, snapshot models.FleetSnapshot) error {
	messages, err := snapshotMessages(snapshot)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		return nil
	}
	return p.writer.WriteMessages(ctx, messages...)
}

func snapshotMessages(snapshot models.FleetSnapshot) ([]kafka.Message, error) {
	messages := make([]kafka.Message, 0, len(snapshot.Machines))
	for _, m := range snapshot.Machines {
		value, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(m.MachineID),
			Value: value,
			Time:  snapshot.Timestamp,
		})
	}
	return messages, nil
}

// Close закрывает соединение с Kafka
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
