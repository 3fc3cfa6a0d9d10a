package main

import (
	"context"
	"log"

	"userorders/internal/app"
	"userorders/internal/correlation"
	"userorders/internal/env"
	"userorders/internal/metrics"
	"userorders/internal/requests"
	"userorders/pkg/graceful"
	"userorders/pkg/kafkaclient"
)

func main() {
	env.LoadEnv()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	cfg, err := env.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if cfg.KafkaBroker == "" {
		log.Fatalf("Environment variable KAFKA_BROKER not set")
	}

	log.Printf("Connecting to Kafka broker: %s on topic: %s with group ID: %s", cfg.KafkaBroker, cfg.KafkaRequestTopic, cfg.KafkaGroupID)

	users, closeUsers, err := app.OpenUserStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s user store: %v", cfg.UserStore, err)
	}
	defer closeUsers()

	consumer := kafkaclient.NewKafkaConsumer(cfg.KafkaRequestTopic, cfg.KafkaGroupID, cfg.KafkaBroker)
	publisher := kafkaclient.NewPublisher(cfg.KafkaBroker, cfg.KafkaResultTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("Failed to close publisher: %v", err)
		}
	}()

	svc := app.NewService(cfg, users, metrics.NewRegistry(), correlation.DefaultLogger())
	worker := requests.NewWorker(consumer, svc, publisher, correlation.DefaultLogger())

	consumer.StartConsuming(ctx)
	worker.Run(ctx)

	consumer.Stop()
	log.Println("Main method finished, application exiting.")
}
