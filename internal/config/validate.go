package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/scheduling"
)

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if _, err := c.SchedulingConfig(); err != nil {
		return err
	}

	if _, err := c.ClosedWeekdays(); err != nil {
		return err
	}

	if c.Shop.BookingHorizonDays <= 0 {
		return fmt.Errorf("%w: shop.booking_horizon_days must be positive", ErrInvalidConfig)
	}

	if c.Booking.ConfirmationCodeLength < 6 {
		return fmt.Errorf("%w: booking.confirmation_code_length must be at least 6", ErrInvalidConfig)
	}

	if c.Verification.CodeLength <= 0 || c.Verification.CodeTTLMinutes <= 0 || c.Verification.VerifiedTTLMinutes <= 0 {
		return fmt.Errorf("%w: verification lengths and ttls must be positive", ErrInvalidConfig)
	}

	if c.SMS.Enabled && c.SMS.URL == "" {
		return fmt.Errorf("%w: sms.url is required when sms is enabled", ErrInvalidConfig)
	}

	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("%w: kafka.brokers and kafka.topic are required when kafka is enabled", ErrInvalidConfig)
	}

	if c.Staff.SessionTTLHours <= 0 {
		return fmt.Errorf("%w: staff.session_ttl_hours must be positive", ErrInvalidConfig)
	}

	catalog, err := c.Catalog()
	if err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(c.Staff.Accounts))
	for _, acc := range c.Staff.Accounts {
		key := strings.ToLower(acc.Username)
		if key == "" || acc.PasswordHash == "" {
			return fmt.Errorf("%w: staff account needs username and password_hash", ErrInvalidConfig)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate staff account %q", ErrInvalidConfig, acc.Username)
		}
		seen[key] = struct{}{}
		if acc.Barber != "" {
			if _, ok := catalog.Barber(acc.Barber); !ok {
				return fmt.Errorf("%w: staff account %q references unknown barber %q", ErrInvalidConfig, acc.Username, acc.Barber)
			}
		}
	}

	return nil
}

// Location возвращает часовой пояс барбершопа
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Shop.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: shop.timezone %q: %v", ErrInvalidConfig, c.Shop.Timezone, err)
	}
	return loc, nil
}

// SchedulingConfig собирает параметры планировщика слотов
func (c *Config) SchedulingConfig() (scheduling.Config, error) {
	loc, err := c.Location()
	if err != nil {
		return scheduling.Config{}, err
	}

	hours, err := scheduling.ParseBusinessHours(c.Shop.OpenTime, c.Shop.CloseTime)
	if err != nil {
		return scheduling.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	sc := scheduling.Config{
		Hours:              hours,
		GranularityMinutes: c.Shop.GranularityMinutes,
		BufferMinutes:      c.Shop.BufferMinutes,
		Location:           loc,
	}
	if err := sc.Validate(); err != nil {
		return scheduling.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return sc, nil
}

// ClosedWeekdays разбирает shop.closed_weekdays
func (c *Config) ClosedWeekdays() ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(c.Shop.ClosedWeekdays))
	for _, name := range c.Shop.ClosedWeekdays {
		day, ok := parseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidConfig, name)
		}
		days = append(days, day)
	}
	return days, nil
}

// ShopRules собирает правила салона на уровне дат
func (c *Config) ShopRules() (domain.ShopRules, error) {
	loc, err := c.Location()
	if err != nil {
		return domain.ShopRules{}, err
	}
	closed, err := c.ClosedWeekdays()
	if err != nil {
		return domain.ShopRules{}, err
	}
	return domain.ShopRules{
		Location:            loc,
		ClosedWeekdays:      closed,
		BookingHorizonDays:  c.Shop.BookingHorizonDays,
		AllowPastSlotsToday: c.Shop.AllowPastSlotsToday,
	}, nil
}

// Catalog собирает каталог услуг и барберов
func (c *Config) Catalog() (*domain.Catalog, error) {
	services := make([]domain.Service, 0, len(c.Services))
	for _, s := range c.Services {
		services = append(services, domain.Service{
			Name:            s.Name,
			PriceCents:      s.PriceCents,
			DurationMinutes: s.DurationMinutes,
		})
	}

	barbers := make([]domain.Barber, 0, len(c.Barbers))
	for _, b := range c.Barbers {
		barbers = append(barbers, domain.Barber{
			Name:           b.Name,
			SurchargeCents: b.SurchargeCents,
			NotifyPhone:    b.NotifyPhone,
		})
	}

	catalog, err := domain.NewCatalog(services, barbers)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return catalog, nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, true
		}
	}
	return time.Sunday, false
}
