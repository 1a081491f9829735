package config

import (
	"log"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	pkgconfig "github.com/Skotchmaster/food_order/pkg/config"
)

type Config struct {
	ServiceName string
	ServerPort  string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    string

	KafkaBrokers []string
	KafkaTopic   string
	AMQPURL      string
	AMQPExchange string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	SendGridAPIKey string
	MailFrom       string
	MailTemplateID string
	NotifyQueue    int

	AdvanceInterval time.Duration
	AdvanceAfter    time.Duration

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v, using system environment", err)
	}

	return &Config{
		ServiceName: pkgconfig.EnvDefault("SERVICE_NAME", "food_order"),
		ServerPort:  pkgconfig.EnvDefault("SERVER_PORT", "8080"),
		DatabaseURL: pkgconfig.EnvDefault("DATABASE_URL", ""),
		JWTSecret:   pkgconfig.EnvDefault("JWT_SECRET", ""),
		TokenTTL:    pkgconfig.EnvDurationDefault("TOKEN_TTL", 5*time.Minute),
		LogLevel:    pkgconfig.EnvDefault("LOG_LEVEL", "info"),

		KafkaBrokers: pkgconfig.CSV(pkgconfig.EnvDefault("KAFKA_BROKERS", "")),
		KafkaTopic:   pkgconfig.EnvDefault("KAFKA_TOPIC", "order_events"),
		AMQPURL:      pkgconfig.EnvDefault("AMQP_URL", ""),
		AMQPExchange: pkgconfig.EnvDefault("AMQP_EXCHANGE", "orders_fanout"),

		ESURL:      pkgconfig.EnvDefault("ES_URL", ""),
		ESUser:     pkgconfig.EnvDefault("ES_USER", ""),
		ESPassword: pkgconfig.EnvDefault("ES_PASSWORD", ""),
		ESIndex:    pkgconfig.EnvDefault("ES_INDEX", "dishes"),

		SendGridAPIKey: pkgconfig.EnvDefault("SENDGRID_API_KEY", ""),
		MailFrom:       pkgconfig.EnvDefault("MAIL_FROM", "no-reply@destradigital.com"),
		MailTemplateID: pkgconfig.EnvDefault("MAIL_TEMPLATE_ID", "d-f802dc22765d4ef19ce70e6b54f467e9"),
		NotifyQueue:    pkgconfig.EnvIntDefault("NOTIFY_QUEUE_SIZE", 100),

		AdvanceInterval: pkgconfig.EnvDurationDefault("ADVANCE_INTERVAL", 60*time.Second),
		AdvanceAfter:    pkgconfig.EnvDurationDefault("ADVANCE_AFTER", 5*time.Minute),

		AdminEmail:    pkgconfig.EnvDefault("ADMIN_EMAIL", ""),
		AdminPassword: pkgconfig.EnvDefault("ADMIN_PASSWORD", ""),
		AdminName:     pkgconfig.EnvDefault("ADMIN_NAME", "Admin"),
	}
}

// Required lists the settings the server cannot start without.
func (c *Config) Required() map[string]string {
	return map[string]string{
		"DATABASE_URL": c.DatabaseURL,
		"JWT_SECRET":   c.JWTSecret,
	}
}

func (c *Config) Addr() string {
	if _, err := strconv.Atoi(c.ServerPort); err == nil {
		return ":" + c.ServerPort
	}
	return c.ServerPort
}
