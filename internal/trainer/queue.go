package trainer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"copra/internal/util"
	"copra/pkg/logger"
)

// TrainQueue carries single-client retrain requests.
const TrainQueue = "train_queue"

// RetrainMsg is the body of a retrain request.
type RetrainMsg struct {
	Client string `json:"client"`
}

// ConnectQueue dials RabbitMQ from RABBITMQ_USER, RABBITMQ_PASSWORD,
// RABBITMQ_HOST and RABBITMQ_PORT.
func ConnectQueue() (*amqp091.Connection, error) {
	connURL := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		util.GetEnv("RABBITMQ_USER"),
		util.GetEnv("RABBITMQ_PASSWORD"),
		util.GetEnv("RABBITMQ_HOST"),
		util.GetEnv("RABBITMQ_PORT"),
	)
	conn, err := amqp091.Dial(connURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

// Consume declares the train queue and processes retrain requests one at a
// time until the context ends. A failed retrain is logged and acknowledged;
// retraining has no automatic retry, the next scheduled run covers it.
func Consume(ctx context.Context, conn *amqp091.Connection, src Source, sink Sink, params Params) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		TrainQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(
		TrainQueue,
		TrainQueue+"_consumer",
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	logger.Info("Listening for retrain requests", "queue", TrainQueue)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping retrain consumer")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			var req RetrainMsg
			if err := json.Unmarshal(msg.Body, &req); err != nil || req.Client == "" {
				logger.Error("Discarding malformed retrain request", "body", string(msg.Body), "err", err)
				if err := msg.Ack(false); err != nil {
					logger.Error("Failed to ack message", "err", err)
				}
				continue
			}

			logger.Info("Retraining client", "client", req.Client)
			if err := ProcessClient(ctx, src, sink, req.Client, params); err != nil {
				logger.Error("Retrain failed", "client", req.Client, "err", err)
			}
			if err := msg.Ack(false); err != nil {
				logger.Error("Failed to ack message", "err", err)
			}
		}
	}
}
