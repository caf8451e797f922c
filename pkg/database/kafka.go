package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// NewKafkaWriterWithRetry build a Kafka writer and send a probe message to confirm the connection
func NewKafkaWriterWithRetry(k KafkaConnection) (*kafka.Writer, error) {
	var writer *kafka.Writer
	var err error

	for attempt := 1; attempt <= k.RetryCount; attempt++ {
		writer = kafka.NewWriter(kafka.WriterConfig{
			Brokers:  k.Brokers,
			Topic:    k.Topic,
			Balancer: &kafka.LeastBytes{},
		})

		// probe message confirms broker reachability
		err = writer.WriteMessages(context.Background(), kafka.Message{
			Key:   []byte("ping"),
			Value: []byte("ping"),
		})
		if err == nil {
			log.Printf("Kafka writer connected (attempt %d)", attempt)
			return writer, nil
		}

		log.Printf("Kafka writer connect failed (attempt %d/%d): %v", attempt, k.RetryCount, err)
		writer.Close()
		time.Sleep(k.RetryInterval)
	}

	return nil, fmt.Errorf("failed to build kafka writer after %d attempts: %v", k.RetryCount, err)
}

// NewKafkaReader build a Kafka reader for a consumer group
func NewKafkaReader(k KafkaConnection) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.Brokers,
		Topic:    k.Topic,
		GroupID:  k.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
