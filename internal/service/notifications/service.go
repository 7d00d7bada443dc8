package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/integrations/events"
)

// Kind тип уведомления
type Kind string

const (
	KindBooked      Kind = events.TypeBooked
	KindRescheduled Kind = events.TypeRescheduled
	KindCancelled   Kind = events.TypeCancelled
)

// Каналы для метрики неудачных уведомлений
const (
	ChannelCustomerSMS = "customer_sms"
	ChannelBarberSMS   = "barber_sms"
	ChannelEvents      = "events"
)

const (
	notifyTimeout = 10 * time.Second
	whenFormat    = "Mon Jan 2 at 3:04 PM"
)

// Service рассылает уведомления после зафиксированных изменений записей
// Ошибки доставки логируются и учитываются в метриках, но никогда не возвращаются вызывающему
type Service struct {
	sms       SMSSender
	publisher EventPublisher
	barbers   BarberDirectory
	metrics   Metrics
	location  *time.Location
	shopName  string
	logger    Logger
}

// NewService создает сервис уведомлений. publisher может быть nil
func NewService(
	sms SMSSender,
	publisher EventPublisher,
	barbers BarberDirectory,
	metrics Metrics,
	location *time.Location,
	shopName string,
	logger Logger,
) *Service {
	return &Service{
		sms:       sms,
		publisher: publisher,
		barbers:   barbers,
		metrics:   metrics,
		location:  location,
		shopName:  shopName,
		logger:    logger,
	}
}

// Notify уведомляет клиента, барбера и шину событий об изменении записи
func (s *Service) Notify(ctx context.Context, kind Kind, appt *domain.Appointment) {
	// Уведомление не должно зависеть от отмены входящего запроса
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if appt.CustomerPhone != "" {
		if _, err := s.sms.Send(ctx, appt.CustomerPhone, s.customerMessage(kind, appt)); err != nil {
			s.fail(ChannelCustomerSMS, appt, err)
		}
	}

	if barber, ok := s.barbers.Barber(appt.Barber); ok && barber.NotifyPhone != "" {
		if _, err := s.sms.Send(ctx, barber.NotifyPhone, s.barberMessage(kind, appt)); err != nil {
			s.fail(ChannelBarberSMS, appt, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, string(kind), appt); err != nil {
			s.fail(ChannelEvents, appt, err)
		}
	}

	s.logger.Info("Notifications: %s sent for appointment code=%s", kind, appt.ConfirmationCode)
}

// SendVerificationCode отправляет код подтверждения телефона
func (s *Service) SendVerificationCode(ctx context.Context, phone, code string, ttl time.Duration) error {
	body := fmt.Sprintf("%s: your verification code is %s. It expires in %d minutes.",
		s.shopName, code, int(ttl.Minutes()))
	if _, err := s.sms.Send(ctx, phone, body); err != nil {
		s.metrics.RecordNotificationFailure(ChannelCustomerSMS)
		return err
	}
	return nil
}

func (s *Service) fail(channel string, appt *domain.Appointment, err error) {
	s.metrics.RecordNotificationFailure(channel)
	s.logger.Warn("Notifications: %s failed for appointment code=%s: %v", channel, appt.ConfirmationCode, err)
}

func (s *Service) customerMessage(kind Kind, appt *domain.Appointment) string {
	when := appt.StartTime.In(s.location).Format(whenFormat)
	switch kind {
	case KindRescheduled:
		return fmt.Sprintf("%s: your appointment with %s has moved to %s. Confirmation code %s.",
			s.shopName, appt.Barber, when, appt.ConfirmationCode)
	case KindCancelled:
		return fmt.Sprintf("%s: your appointment with %s on %s has been cancelled.",
			s.shopName, appt.Barber, when)
	default:
		return fmt.Sprintf("%s: your appointment with %s is confirmed for %s. Confirmation code %s.",
			s.shopName, appt.Barber, when, appt.ConfirmationCode)
	}
}

func (s *Service) barberMessage(kind Kind, appt *domain.Appointment) string {
	when := appt.StartTime.In(s.location).Format(whenFormat)
	services := strings.Join(appt.Services, ", ")
	switch kind {
	case KindRescheduled:
		return fmt.Sprintf("Rescheduled: %s (%s) now %s [%s]", appt.CustomerName, services, when, appt.ConfirmationCode)
	case KindCancelled:
		return fmt.Sprintf("Cancelled: %s (%s) %s [%s]", appt.CustomerName, services, when, appt.ConfirmationCode)
	default:
		return fmt.Sprintf("New booking: %s (%s) %s [%s]", appt.CustomerName, services, when, appt.ConfirmationCode)
	}
}
