package facades

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/sbilibin2017/course-api/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter is the subset of *kafka.Writer used for publishing.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// CourseEventsKafkaFacade publishes course lifecycle events to a Kafka topic.
type CourseEventsKafkaFacade struct {
	writer KafkaWriter
}

// NewCourseEventsKafkaFacade creates a new facade over a Kafka writer.
func NewCourseEventsKafkaFacade(writer KafkaWriter) *CourseEventsKafkaFacade {
	return &CourseEventsKafkaFacade{writer: writer}
}

// Publish writes the event as JSON, keyed by course id so events for one
// course land on the same partition.
func (f *CourseEventsKafkaFacade) Publish(ctx context.Context, event models.CourseEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.CourseID, 10)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	return f.writer.WriteMessages(ctx, msg)
}
