package repository

import (
	"context"
	"encoding/json"

	"event_management_service/internal/mailer/domain"

	"github.com/segmentio/kafka-go"
)

// MailQueue definition enqueue outbound mail, producers never block on delivery
type MailQueue interface {
	Enqueue(ctx context.Context, task domain.MailTask) error
}

type kafkaMailQueue struct {
	writer *kafka.Writer
}

// NewKafkaMailQueue create a MailQueue over a kafka writer
func NewKafkaMailQueue(writer *kafka.Writer) MailQueue {
	return &kafkaMailQueue{writer: writer}
}

func (q *kafkaMailQueue) Enqueue(ctx context.Context, task domain.MailTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return q.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(task.Subject),
		Value: data,
	})
}
