package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"handoff/internal/core/domain/model/confirmation"
	"handoff/internal/core/domain/model/shipment"
	"handoff/internal/core/domain/services"
	"handoff/internal/jobs"
	"handoff/internal/pkg/keylock"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers                 []string
	KafkaConsumerGroup           string
	KafkaShipmentDispatchedTopic string
	KafkaShipmentStatusTopic     string

	// RedisAddr enables cross-instance record locks. Locks stay in-process when empty.
	RedisAddr      string
	RecordLockWait time.Duration
	RecordLockTTL  time.Duration

	JWTSecret      string
	PublicBaseURL  string
	CarriersConfig string

	MaxLocationAccuracyMeters    float64
	DefaultProximityRadiusMeters float64
	Policy                       confirmation.Policy
	Schedules                    jobs.Schedules
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the configuration through getenv. Unset tuning values
// fall back to the protocol defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}
	schedules := jobs.DefaultSchedules()

	config := Config{
		HTTPPort:   p.string("HTTP_PORT", "8080"),
		DBHost:     p.string("DB_HOST", "localhost"),
		DBPort:     p.string("DB_PORT", "5432"),
		DBUser:     p.string("DB_USER", ""),
		DBPassword: p.string("DB_PASSWORD", ""),
		DBName:     p.string("DB_NAME", ""),
		DBSslMode:  p.string("DB_SSLMODE", "disable"),

		KafkaBrokers:                 p.list("KAFKA_BROKERS"),
		KafkaConsumerGroup:           p.string("KAFKA_CONSUMER_GROUP", "handoff"),
		KafkaShipmentDispatchedTopic: p.string("KAFKA_SHIPMENT_DISPATCHED_TOPIC", "shipment.leg.dispatched"),
		KafkaShipmentStatusTopic:     p.string("KAFKA_SHIPMENT_STATUS_TOPIC", "shipment.leg.status"),

		RedisAddr:      p.string("REDIS_ADDR", ""),
		RecordLockWait: p.duration("RECORD_LOCK_WAIT", keylock.DefaultWait),
		RecordLockTTL:  p.duration("RECORD_LOCK_TTL", 30*time.Second),

		JWTSecret:      p.string("JWT_SECRET", ""),
		PublicBaseURL:  p.string("PUBLIC_BASE_URL", "http://localhost:8080"),
		CarriersConfig: p.string("CARRIERS_CONFIG", ""),

		MaxLocationAccuracyMeters:    p.float("MAX_LOCATION_ACCURACY_METERS", services.DefaultMaxAccuracyMeters),
		DefaultProximityRadiusMeters: p.float("DEFAULT_PROXIMITY_RADIUS_METERS", shipment.DefaultProximityRadiusMeters),
		Policy: confirmation.Policy{
			ConfirmationWindow: p.duration("CONFIRMATION_WINDOW", confirmation.DefaultConfirmationWindow),
			MaxReschedules:     p.int("MAX_RESCHEDULES", confirmation.DefaultMaxReschedules),
			RescheduleDelay:    p.duration("RESCHEDULE_DELAY", confirmation.DefaultRescheduleDelay),
		},
		Schedules: jobs.Schedules{
			Reschedule: p.string("RESCHEDULE_SCHEDULE", schedules.Reschedule),
			AutoReturn: p.string("AUTO_RETURN_SCHEDULE", schedules.AutoReturn),
			LinkExpiry: p.string("LINK_EXPIRY_SCHEDULE", schedules.LinkExpiry),
			BatchSize:  p.int("SWEEP_BATCH_SIZE", schedules.BatchSize),
		},
	}

	var required error
	if config.JWTSecret == "" {
		required = errors.New("JWT_SECRET is required")
	}
	if len(config.KafkaBrokers) == 0 {
		required = errors.Join(required, errors.New("KAFKA_BROKERS is required"))
	}
	if err := errors.Join(p.err, required); err != nil {
		return Config{}, err
	}
	return config, nil
}

// envParser collects every malformed variable instead of stopping at the first one.
type envParser struct {
	getenv func(string) string
	err    error
}

func (p *envParser) string(key, fallback string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (p *envParser) list(key string) []string {
	var values []string
	for _, v := range strings.Split(p.getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func (p *envParser) duration(key string, fallback time.Duration) time.Duration {
	raw := p.string(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %q is not a positive duration", key, raw))
		return fallback
	}
	return d
}

func (p *envParser) int(key string, fallback int) int {
	raw := p.string(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %q is not a non-negative integer", key, raw))
		return fallback
	}
	return n
}

func (p *envParser) float(key string, fallback float64) float64 {
	raw := p.string(key, "")
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		p.err = errors.Join(p.err, fmt.Errorf("%s: %q is not a positive number", key, raw))
		return fallback
	}
	return f
}
