package repository

import (
	"context"

	"StarSpin/internal/domain/models"
	domainrepo "StarSpin/internal/domain/repository"
	pkgkafka "StarSpin/pkg/kafka"
)

// KafkaResultPublisher implements Publisher for Kafka. Records are keyed
// by target so all updates for one star land in one partition.
type KafkaResultPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaResultPublisher creates a Kafka publisher.
func NewKafkaResultPublisher(producer *pkgkafka.Producer, topic string) domainrepo.Publisher {
	return &KafkaResultPublisher{producer: producer, topic: topic}
}

func (p *KafkaResultPublisher) Publish(ctx context.Context, res *models.RotationResult) error {
	row := res.Row()
	return p.producer.Publish(ctx, p.topic, []byte(row.Target), row)
}

func (p *KafkaResultPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
