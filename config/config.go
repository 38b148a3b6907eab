package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func New() (*Config, error) {
	var Config Config
	if os.Getenv("GO_ENV") == "local" {
		_ = godotenv.Load(".env")
	}

	if err := env.Parse(&Config); err != nil {
		logrus.Fatalf("Error initializing: %s", err.Error())
		os.Exit(1)
	}
	return &Config, nil
}

type Config struct {
	APP
	DB
	Kafka
	Processor
}

type APP struct {
	PORT string `env:"APP_PORT" envDefault:"8080"`
}

type DB struct {
	HOST     string `env:"DB_HOST"`
	USER     string `env:"DB_USER"`
	PASSWORD string `env:"DB_PASSWORD"`
	NAME     string `env:"DB_NAME"`
	PORT     string `env:"DB_PORT"`
	SSLMODE  string `env:"DB_SSLMODE"`
}

type Kafka struct {
	Enabled          bool          `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers          string        `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	ConsumerGroup    string        `env:"KAFKA_GROUP_ID" envDefault:"payment-processor"`
	SubscriberTopics string        `env:"KAFKA_SUBSCRIBER_TOPICS" envDefault:"transfers.requested"`
	PublishTopics    string        `env:"KAFKA_PUBLISH_TOPICS" envDefault:"payments.processed,payments.dlq"`
	RetryMaxAttempts int           `env:"KAFKA_RETRY_MAX_ATTEMPTS" envDefault:"5"`
	RetryBaseDelay   time.Duration `env:"KAFKA_RETRY_BASE_DELAY" envDefault:"100ms"`
	RetryMaxDelay    time.Duration `env:"KAFKA_RETRY_MAX_DELAY" envDefault:"10s"`
	RetryJitter      bool          `env:"KAFKA_RETRY_JITTER" envDefault:"true"`
}

// Processor configures the transfer engine: worker pool width, retry policy,
// amount bounds (minor units) and the simulated external latency window.
type Processor struct {
	PoolSize       int           `env:"PROCESSOR_POOL_SIZE" envDefault:"8"`
	MaxAttempts    int           `env:"PROCESSOR_MAX_ATTEMPTS" envDefault:"3"`
	AttemptTimeout time.Duration `env:"PROCESSOR_ATTEMPT_TIMEOUT" envDefault:"5s"`
	MinAmount      int64         `env:"PROCESSOR_MIN_AMOUNT" envDefault:"1"`
	MaxAmount      int64         `env:"PROCESSOR_MAX_AMOUNT" envDefault:"10000000"`
	MinLatency     time.Duration `env:"PROCESSOR_MIN_LATENCY" envDefault:"50ms"`
	MaxLatency     time.Duration `env:"PROCESSOR_MAX_LATENCY" envDefault:"200ms"`
	RetryBaseDelay time.Duration `env:"PROCESSOR_RETRY_BASE_DELAY" envDefault:"100ms"`
	RetryMaxDelay  time.Duration `env:"PROCESSOR_RETRY_MAX_DELAY" envDefault:"10s"`
	RetryJitter    bool          `env:"PROCESSOR_RETRY_JITTER" envDefault:"true"`
	AuditBuffer    int           `env:"PROCESSOR_AUDIT_BUFFER" envDefault:"1024"`
}

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      bool
}

func (k Kafka) GetRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: k.RetryMaxAttempts,
		BaseDelay:   k.RetryBaseDelay,
		MaxDelay:    k.RetryMaxDelay,
		Jitter:      k.RetryJitter,
	}
}
