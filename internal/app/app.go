package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/payment-processor/config"
	"github.com/bankcore/payment-processor/internal/database"
	"github.com/bankcore/payment-processor/internal/handlers"
	"github.com/bankcore/payment-processor/internal/models"
	"github.com/bankcore/payment-processor/internal/publisher"
	"github.com/bankcore/payment-processor/internal/repository/memory"
	"github.com/bankcore/payment-processor/internal/repository/posgrest"
	"github.com/bankcore/payment-processor/internal/service"
	"github.com/bankcore/payment-processor/internal/subscriber"
)

type App struct {
	config    *config.Config
	Router    *gin.Engine
	processor *service.PaymentProcessor
	consumer  *subscriber.KafkaConsumer
}

func (a *App) Initialize(cfg *config.Config) {
	a.config = cfg

	var accounts service.AccountRepo
	var payments service.PaymentRepo
	if cfg.DB.HOST != "" {
		db, err := cfg.DB.GormConnect()
		if err != nil {
			logrus.Fatalf("failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Account{}, &models.PaymentRequest{}); err != nil {
			logrus.Fatalf("failed to auto migrate: %v", err)
		}
		if os.Getenv("GO_ENV") == "local" {
			if err := database.SeedAccounts(db); err != nil {
				logrus.Warnf("failed to seed accounts: %v", err)
			}
		}
		accounts = posgrest.New[models.Account, int64](db)
		payments = posgrest.New[models.PaymentRequest, string](db)
	} else {
		logrus.Warn("no database configured, using in-memory stores")
		accounts = memory.NewAccountRepo(database.DefaultBalances())
		payments = memory.NewPaymentRepo()
	}

	var pub service.Publisher
	var kafkaPublisher *publisher.KafkaPublisher
	if cfg.Kafka.Enabled {
		publishTopics := strings.Split(cfg.Kafka.PublishTopics, ",")
		kafkaPublisher = publisher.NewKafkaPublisher(cfg.Kafka.Brokers, publishTopics, cfg.Kafka.GetRetryConfig())
		pub = kafkaPublisher
	}

	a.processor = service.NewPaymentProcessor(accounts, payments, pub, service.Config{
		PoolSize:       cfg.Processor.PoolSize,
		MaxAttempts:    cfg.Processor.MaxAttempts,
		AttemptTimeout: cfg.Processor.AttemptTimeout,
		MinAmount:      cfg.Processor.MinAmount,
		MaxAmount:      cfg.Processor.MaxAmount,
		MinLatency:     cfg.Processor.MinLatency,
		MaxLatency:     cfg.Processor.MaxLatency,
		RetryBaseDelay: cfg.Processor.RetryBaseDelay,
		RetryMaxDelay:  cfg.Processor.RetryMaxDelay,
		RetryJitter:    cfg.Processor.RetryJitter,
		AuditBuffer:    cfg.Processor.AuditBuffer,
	}, logrus.StandardLogger())

	paymentHandler := handlers.NewPaymentHandler(a.processor)

	a.Router = gin.Default()
	a.Router.Use(gin.Recovery())
	a.RegisterRoutes(paymentHandler)

	if cfg.Kafka.Enabled {
		a.initSubscribers(paymentHandler, kafkaPublisher, cfg.Kafka.GetRetryConfig())
	}
}

func (a *App) Run() {
	err := a.Router.Run(fmt.Sprintf(":%s", a.config.APP.PORT))
	if err != nil {
		panic(err)
	}
}

// Shutdown drains the audit queue and stops the Kafka readers.
func (a *App) Shutdown() {
	if a.consumer != nil {
		a.consumer.Close()
	}
	if a.processor != nil {
		a.processor.Close()
	}
}

func (a *App) initSubscribers(paymentHandler *handlers.PaymentHandler, pub *publisher.KafkaPublisher, retryConfig config.RetryConfig) {
	brokers := strings.Split(a.config.Kafka.Brokers, ",")
	topics := strings.Split(a.config.Kafka.SubscriberTopics, ",")
	groupID := a.config.Kafka.ConsumerGroup

	a.consumer = subscriber.NewMultiTopicConsumer(brokers, topics, groupID, pub, retryConfig)

	a.consumer.Listen(context.Background(), func(topic string, value []byte) error {
		err := paymentHandler.HandleEvents(context.Background(), topic, value)
		if err != nil {
			logrus.Error(err.Error())
		}
		return err
	})
}
