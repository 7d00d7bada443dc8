package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

// ErrPublish возвращается, когда событие не удалось записать в kafka
var ErrPublish = errors.New("events: failed to publish")

// Publisher публикует события о записях в kafka
// Ключ сообщения - имя барбера, чтобы события одного календаря шли по порядку
type Publisher struct {
	writer MessageWriter
	now    func() time.Time
}

// NewPublisher создает publisher поверх writer
func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer, now: time.Now}
}

// NewKafkaWriter создает writer для списка брокеров и топика
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// Publish отправляет событие eventType о записи appt
func (p *Publisher) Publish(ctx context.Context, eventType string, appt *domain.Appointment) error {
	event := AppointmentEvent{
		EventID:          uuid.NewString(),
		Type:             eventType,
		AppointmentID:    appt.ID,
		ConfirmationCode: appt.ConfirmationCode,
		Barber:           appt.Barber,
		Services:         appt.Services,
		StartTime:        appt.StartTime.UTC(),
		DurationMinutes:  appt.DurationMinutes,
		Source:           string(appt.Source),
		OccurredAt:       p.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Key:   []byte(appt.Barber),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
