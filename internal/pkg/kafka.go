package pkg

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// AuditProducer 审核流水的 kafka 生产端。消息按 key 哈希分区，
// 同一审核目标的动作落在同一分区，消费侧按分区顺序回放即可。
type AuditProducer struct {
	writer *kafka.Writer
}

func NewAuditProducer(brokers []string, topic string) *AuditProducer {
	return &AuditProducer{
		writer: &kafka.Writer{
			Addr:  kafka.TCP(brokers...),
			Topic: topic,
			// 流水不能乱序也不能丢，同步等全副本确认
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *AuditProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Publish 投递一条流水，payload 即 outbox 行里的 JSON
func (p *AuditProducer) Publish(ctx context.Context, key string, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
}
