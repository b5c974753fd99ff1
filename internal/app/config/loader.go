package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// legacyAPIBaseKeys are the names the web front-end used for the same API base.
var legacyAPIBaseKeys = []string{"NEXT_PUBLIC_API_BASE_URL", "NEXT_PUBLIC_API_URL"}

// MustInitConfig initializes configuration from .env file or environment variables.
// If configFile exists, it loads from the file. Otherwise, it automatically binds
// environment variables based on the Config struct's mapstructure tags.
func MustInitConfig(configFile string) Config {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		slog.Error("cannot unmarshal config", slog.String("error", err.Error()))
		panic(err)
	}

	return cfg
}

// LoadConfig reads configFile (env format) and the process environment into Config.
func LoadConfig(configFile string) (Config, error) {
	var (
		vpr = viper.New()
		cfg Config
	)

	setDefaults(vpr)

	vpr.AutomaticEnv()

	vpr.SetConfigFile(configFile)
	vpr.SetConfigType("env")

	if err := vpr.ReadInConfig(); err != nil {
		slog.Warn("config file not found or cannot be read, using environment variables",
			slog.String("file", configFile),
			slog.String("error", err.Error()))
	} else {
		slog.Info("config file loaded successfully", slog.String("file", configFile))
	}

	// Automatically bind all environment variables from Config struct
	bindEnvFromStruct(vpr)
	warnLegacyKeys(vpr)

	// Unmarshal configuration into struct
	if err := vpr.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("LOG_LEVEL", "info")
	vpr.SetDefault("HTTP_PORT", 8080)
	vpr.SetDefault("HTTP_TIMEOUT", "30s")
	vpr.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	vpr.SetDefault("API_BASE_URL", "http://localhost:8000")
	vpr.SetDefault("API_TIMEOUT", "15s")
	vpr.SetDefault("API_MAX_RETRIES", 2)
	vpr.SetDefault("API_RATE_LIMIT", 20)
	vpr.SetDefault("API_RATE_BURST", 40)
	vpr.SetDefault("REDIS_ADDR", "localhost:6379")
	vpr.SetDefault("REDIS_TIMEOUT", "2s")
	vpr.SetDefault("OFFER_CACHE_EXPIRATION", "30m")
	vpr.SetDefault("SUBMIT_RATE_LIMIT_PER_MINUTE", 5)
	vpr.SetDefault("LOGIN_PATH", "/auth/login")
	vpr.SetDefault("TICKET_STATUS_SOURCE", TicketSourceSimulated)
	vpr.SetDefault("TICKET_POLL_INTERVAL", "3s")
	vpr.SetDefault("TICKET_READY_DELAY", "2s")
	vpr.SetDefault("TICKET_MAX_INCREMENT", 15)
	vpr.SetDefault("TICKET_RETENTION", "10m")
	vpr.SetDefault("SEARCH_CACHE_EXPIRATION", "5m")
	vpr.SetDefault("LOCATION_CACHE_EXPIRATION", "24h")
	vpr.SetDefault("SEARCH_MAX_OFFERS", 5)
	vpr.SetDefault("SEARCH_DEFAULT_CURRENCY", "USD")
	vpr.SetDefault("KAFKA_TICKET_STATUS_TOPIC", "ticket-status")
	vpr.SetDefault("KAFKA_GROUP_ID", "flight-booking-bff")
}

// warnLegacyKeys flags front-end API base names, they are never used as a fallback.
func warnLegacyKeys(vpr *viper.Viper) {
	for _, key := range legacyAPIBaseKeys {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			slog.Warn("ignoring legacy API base variable, set API_BASE_URL instead",
				slog.String("variable", key))
			continue
		}

		if vpr.IsSet(key) {
			slog.Warn("ignoring legacy API base key in config file, set API_BASE_URL instead",
				slog.String("variable", key))
		}
	}
}

// bindEnvFromStruct automatically binds environment variables based on mapstructure tags using reflection
func bindEnvFromStruct(vpr *viper.Viper) {
	bindEnvFromType(vpr, reflect.TypeOf(Config{}))
}

func bindEnvFromType(vpr *viper.Viper, t reflect.Type) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" || tag == "-" {
			// If it's an embedded struct without a tag, recurse
			if field.Anonymous && field.Type.Kind() == reflect.Struct {
				bindEnvFromType(vpr, field.Type)
			}
			continue
		}

		parts := strings.Split(tag, ",")
		envVar := parts[0]
		isSquash := false
		for _, p := range parts {
			if strings.TrimSpace(p) == "squash" {
				isSquash = true
				break
			}
		}

		if isSquash && field.Type.Kind() == reflect.Struct {
			bindEnvFromType(vpr, field.Type)
			continue
		}

		if envVar == "" {
			continue
		}

		_ = vpr.BindEnv(envVar)

		// comma separated lists, e.g. KAFKA_BROKERS=a:9092,b:9092
		if field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() == reflect.String {
			if s, ok := vpr.Get(envVar).(string); ok && s != "" {
				vpr.Set(envVar, splitList(s))
			}
			continue
		}

		// If it's an array of struct, check if the value is a JSON string and unmarshal it
		if (field.Type.Kind() == reflect.Slice && field.Type.Elem().Kind() == reflect.Struct) ||
			field.Type.Kind() == reflect.Struct {
			val := vpr.Get(envVar)
			if s, ok := val.(string); ok && s != "" {
				var jsonVal interface{}
				if err := json.Unmarshal([]byte(s), &jsonVal); err == nil {
					vpr.Set(envVar, jsonVal)
				}
			}
		}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
