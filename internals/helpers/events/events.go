package events

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

// Event types
const (
	StudentCreated           = "student.created"
	StudentDeactivated       = "student.deactivated"
	ErrorRecordCreated       = "error_record.created"
	ErrorRecordStatusChanged = "error_record.status_changed"
	ErrorRecordDeleted       = "error_record.deleted"
	SolutionAdded            = "solution.added"
)

type Event struct {
	Type       string      `json:"type"`
	EntityID   int64       `json:"entity_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data,omitempty"`
}

func New(eventType string, id int64, data interface{}) Event {
	return Event{Type: eventType, EntityID: id, OccurredAt: time.Now().UTC(), Data: data}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Emit publishes and only logs on failure; events never fail a request.
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		log.Printf("[EVENTS] publish %s id=%d başarısız: %v", e.Type, e.EntityID, err)
	}
}

// =======================
// No-op
// =======================

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// =======================
// Kafka
// =======================

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(broker),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			Async:                  true,
			AllowAutoTopicCreation: true,
			WriteTimeout:           10 * time.Second,
			Completion: func(msgs []kafka.Message, err error) {
				if err != nil {
					log.Printf("[EVENTS] kafka async write (%d msgs) başarısız: %v", len(msgs), err)
				}
			},
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := sonic.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.Type + ":" + strconv.FormatInt(e.EntityID, 10)),
		Value: payload,
		Time:  e.OccurredAt,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// FromConfig returns a Kafka publisher when a broker is set, Noop otherwise.
func FromConfig(broker, topic string) Publisher {
	if broker == "" {
		log.Println("[EVENTS] KAFKA_BROKER boş, eventler gönderilmiyor")
		return Noop{}
	}
	log.Printf("[EVENTS] kafka %s topic=%s", broker, topic)
	return NewKafkaPublisher(broker, topic)
}

// =======================
// Recorder (tests)
// =======================

type Recorder struct {
	mu     sync.Mutex
	Events []Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Type)
	}
	return out
}
