package events

import (
	"context"

	"github.com/Skotchmaster/food_order/internal/mykafka"
)

type KafkaPublisher struct {
	Producer *mykafka.Producer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{Producer: mykafka.NewProducer(brokers, topic)}
}

func (p *KafkaPublisher) Publish(ctx context.Context, env Envelope) error {
	return p.Producer.PublishEvent(ctx, env.OrderID, env.Type, env)
}

func (p *KafkaPublisher) Close() error {
	return p.Producer.Close()
}
