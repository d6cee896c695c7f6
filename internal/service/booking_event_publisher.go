package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"clinical-assistant/internal/domain/entity"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// ConsultationBookedEvent is published after a booking is stored
type ConsultationBookedEvent struct {
	ConsultationID  int64     `json:"consultation_id"`
	PatientUsername string    `json:"patient_username"`
	Doctor          string    `json:"doctor"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	BookedAt        time.Time `json:"booked_at"`
}

// BookingEventPublisher notifies downstream systems about new bookings
type BookingEventPublisher interface {
	PublishConsultationBooked(ctx context.Context, consultation *entity.Consultation) error
}

type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaBookingEventPublisher struct {
	writer kafkaMessageWriter
	log    *logrus.Logger
}

func NewKafkaBookingEventPublisher(writer kafkaMessageWriter, log *logrus.Logger) BookingEventPublisher {
	return &kafkaBookingEventPublisher{
		writer: writer,
		log:    log,
	}
}

func (p *kafkaBookingEventPublisher) PublishConsultationBooked(ctx context.Context, consultation *entity.Consultation) error {
	event := ConsultationBookedEvent{
		ConsultationID:  consultation.ID,
		PatientUsername: consultation.PatientUsername,
		Doctor:          consultation.Doctor,
		Date:            consultation.Date,
		Time:            consultation.Time,
		BookedAt:        time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode booking event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(consultation.PatientUsername),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "consultation_id", Value: []byte(strconv.FormatInt(consultation.ID, 10))},
		},
	})
	if err != nil {
		p.log.Warnf("Failed to publish booking event for consultation %d: %+v", consultation.ID, err)
		return fmt.Errorf("publish booking event: %w", err)
	}
	return nil
}

type noopBookingEventPublisher struct{}

// NewNoopBookingEventPublisher is used when no broker is configured
func NewNoopBookingEventPublisher() BookingEventPublisher {
	return noopBookingEventPublisher{}
}

func (noopBookingEventPublisher) PublishConsultationBooked(context.Context, *entity.Consultation) error {
	return nil
}
