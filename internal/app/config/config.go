package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP     HTTP       `mapstructure:",squash"`
	API      API        `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
	Booking  Booking    `mapstructure:",squash"`
	Ticket   Ticket     `mapstructure:",squash"`
	Search   Search     `mapstructure:",squash"`
	Kafka    Kafka      `mapstructure:",squash"`
	Contact  Contact    `mapstructure:",squash"`
}

type HTTP struct {
	Port               int           `mapstructure:"HTTP_PORT"`
	Timeout            time.Duration `mapstructure:"HTTP_TIMEOUT"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// API locates the external booking API. BaseURL is the only key for it,
// the two front-end variable names are not read.
type API struct {
	BaseURL      string        `mapstructure:"API_BASE_URL"`
	Timeout      time.Duration `mapstructure:"API_TIMEOUT"`
	MaxRetries   int           `mapstructure:"API_MAX_RETRIES"`
	RateLimitRPS float64       `mapstructure:"API_RATE_LIMIT"`
	RateBurst    int           `mapstructure:"API_RATE_BURST"`
}

type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

type Booking struct {
	OfferCacheExpiration     time.Duration `mapstructure:"OFFER_CACHE_EXPIRATION"`
	SubmitRateLimitPerMinute int           `mapstructure:"SUBMIT_RATE_LIMIT_PER_MINUTE"`
	LoginPath                string        `mapstructure:"LOGIN_PATH"`
}

type Ticket struct {
	StatusSource string        `mapstructure:"TICKET_STATUS_SOURCE"`
	PollInterval time.Duration `mapstructure:"TICKET_POLL_INTERVAL"`
	ReadyDelay   time.Duration `mapstructure:"TICKET_READY_DELAY"`
	MaxIncrement float64       `mapstructure:"TICKET_MAX_INCREMENT"`
	Retention    time.Duration `mapstructure:"TICKET_RETENTION"`
}

type Search struct {
	CacheExpiration  time.Duration `mapstructure:"SEARCH_CACHE_EXPIRATION"`
	LocationCacheTTL time.Duration `mapstructure:"LOCATION_CACHE_EXPIRATION"`
	MaxOffers        int           `mapstructure:"SEARCH_MAX_OFFERS"`
	DefaultCurrency  string        `mapstructure:"SEARCH_DEFAULT_CURRENCY"`
}

type Kafka struct {
	Brokers           []string `mapstructure:"KAFKA_BROKERS"`
	TicketStatusTopic string   `mapstructure:"KAFKA_TICKET_STATUS_TOPIC"`
	GroupID           string   `mapstructure:"KAFKA_GROUP_ID"`
}

// Contact holds the optional messaging deep-link number.
type Contact struct {
	WhatsAppNumber string `mapstructure:"CONTACT_WHATSAPP_NUMBER"`
}

const (
	TicketSourceSimulated = "simulated"
	TicketSourceOrders    = "orders"
	TicketSourceEvents    = "events"
)
