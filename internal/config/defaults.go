package config

import "github.com/m04kA/KingsBarber-BookingService/internal/domain"

// Default возвращает конфигурацию по умолчанию для Kings Barber Shop
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "kings_barber",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "kings_barber_booking",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Shop: ShopConfig{
			Name:               "Kings Barber Shop",
			Timezone:           domain.DefaultTimezone,
			OpenTime:           domain.DefaultOpenTime,
			CloseTime:          domain.DefaultCloseTime,
			GranularityMinutes: domain.DefaultGranularityMinutes,
			BufferMinutes:      domain.DefaultBufferMinutes,
			ClosedWeekdays:     []string{"Tuesday"},
			BookingHorizonDays: domain.DefaultBookingHorizonDays,
		},
		Booking: BookingConfig{
			RequirePhoneVerification: true,
			ConfirmationCodeLength:   domain.DefaultConfirmationCodeLen,
		},
		Verification: VerificationConfig{
			CodeLength:         6,
			CodeTTLMinutes:     5,
			VerifiedTTLMinutes: 30,
			MaxAttempts:        5,
		},
		SMS: SMSConfig{
			Timeout: 5,
		},
		Kafka: KafkaConfig{
			Topic: "barber.appointments",
		},
		Staff: StaffConfig{
			SessionTTLHours: 24,
		},
		Barbers: []BarberConfig{
			{Name: "Alex", SurchargeCents: 500},
			{Name: "Yazan"},
			{Name: "Murad"},
			{Name: "Moe"},
		},
		Services: []ServiceConfig{
			{Name: "The King Package", PriceCents: 10000, DurationMinutes: 60},
			{Name: "Haircut", PriceCents: 4000, DurationMinutes: 30},
			{Name: "Kids Haircut", PriceCents: 3500, DurationMinutes: 20},
			{Name: "Head Shave", PriceCents: 3500, DurationMinutes: 25},
			{Name: "Haircut + Beard Combo", PriceCents: 6000, DurationMinutes: 45},
			{Name: "Hair Dye", PriceCents: 3500, DurationMinutes: 60},
			{Name: "Beard Trim + Lineup", PriceCents: 2500, DurationMinutes: 20},
			{Name: "Hot Towel Shave with Steam", PriceCents: 3500, DurationMinutes: 30},
			{Name: "Beard Dye", PriceCents: 2500, DurationMinutes: 45},
			{Name: "Basic Facial", PriceCents: 4500, DurationMinutes: 30},
			{Name: "Face Threading", PriceCents: 2500, DurationMinutes: 15},
			{Name: "Eyebrow Threading", PriceCents: 1500, DurationMinutes: 10},
			{Name: "Full Face Wax", PriceCents: 3000, DurationMinutes: 25},
			{Name: "Ear Waxing", PriceCents: 1000, DurationMinutes: 5},
			{Name: "Nose Waxing", PriceCents: 1000, DurationMinutes: 5},
			{Name: "Shampoo", PriceCents: 500, DurationMinutes: 10},
		},
	}
}
