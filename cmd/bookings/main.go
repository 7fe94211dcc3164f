package main

import (
	"roomledger/internal/bookings/events"
	"roomledger/internal/bootstrap"
	"roomledger/internal/storage/memory"
	"roomledger/internal/sweeper"
	"roomledger/pkg/app"
	"roomledger/pkg/config"
	"roomledger/pkg/kafka"
	kafka_config "roomledger/pkg/kafka/config"
	kafka_middleware "roomledger/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	defer cfg.GracefulShutdown()

	if cfg.StorageDriver == config.StorageMongo {
		cfg.SetMongo()
	}
	if cfg.LockBackend == config.LockRedis {
		cfg.SetRedis()
	}

	cfg.Log.Info("Starting Bookings service")
	serverApp := app.NewApplication(cfg)

	var kafkaCfg *kafka_config.Config
	var metrics *kafka_middleware.Metrics
	publisher := events.NewNopPublisher()
	if cfg.KafkaEnabled {
		var err error
		kafkaCfg, err = kafka_config.Load()
		if err != nil {
			cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
		}
		kafkaCfg.LogConfiguration(cfg.Log)
		metrics = kafka_middleware.NewMetrics()

		producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.KafkaDLQTopic, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
		}
		if kafkaCfg.EnableMiddleware {
			producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
			producer.Use(metrics.ProducerMiddleware())
		}
		serverApp.OnShutdown(func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
			metrics.Log(cfg.Log)
		})
		publisher = events.NewKafkaPublisher(producer, cfg.Log)
	}

	repos, err := bootstrap.NewRepositories(cfg, memory.NewStore())
	if err != nil {
		cfg.Log.Fatal("Failed to initialize repositories", "error", err)
	}
	services := bootstrap.NewServices(cfg, repos, publisher)
	cfg.Log.Info("Services initialized",
		"storage_driver", cfg.StorageDriver,
		"lock_backend", cfg.LockBackend,
		"database", cfg.MongoDatabaseName,
	)

	if cfg.ExpirySweepInterval > 0 {
		expirySweeper := sweeper.New(services.Bookings, cfg.ExpirySweepInterval, cfg.Log)
		serverApp.AddWorker("expiry-sweeper", expirySweeper.Run)
	}

	if cfg.KafkaEnabled {
		consumer, err := kafka.NewConsumer(
			kafkaCfg,
			cfg.StayCompletedTopic,
			cfg.KafkaConsumerGroup,
			cfg.KafkaDLQTopic,
			events.NewCompletionHandler(services.Bookings, cfg.Log),
			cfg.Log,
		)
		if err != nil {
			cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
		}
		if kafkaCfg.EnableMiddleware {
			consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
			consumer.Use(metrics.ConsumerMiddleware())
		}
		serverApp.AddWorker("stay-completed-consumer", consumer.Start)
		serverApp.OnShutdown(func() {
			if err := consumer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka consumer", "error", err)
			}
		})
	}

	serverApp.SetApp(services.Handlers(cfg)...)
	serverApp.Run()
}
