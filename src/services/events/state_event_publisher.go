package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"skillgraphpoc/src/domain"
	"skillgraphpoc/src/infra/kafka"

	"github.com/google/uuid"
)

type StateEventPublisher struct {
	logger      *slog.Logger
	kafkaClient *kafka.KafkaClient
	topic       string
}

func NewStateEventPublisher(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	topic string,
) *StateEventPublisher {
	return &StateEventPublisher{
		logger:      logger,
		kafkaClient: kafkaClient,
		topic:       topic,
	}
}

// PublishStateSaved emite o evento de estado salvo. A chave é o id da
// conta, para manter a ordenação por conta na partição.
func (p *StateEventPublisher) PublishStateSaved(ctx context.Context, event domain.StateSavedEvent) error {
	eventID := uuid.NewString()

	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal state saved event",
			"error", err,
			"event_id", eventID,
			"account_id", event.AccountID)
		return fmt.Errorf("failed to marshal state saved event: %w", err)
	}

	message := kafka.Message{
		Key:   strconv.FormatInt(event.AccountID, 10),
		Value: eventBytes,
		Headers: map[string]string{
			"event_type":     "state.saved",
			"source_service": "skill-graph-api",
			"schema_version": "v1",
			"event_id":       eventID,
		},
	}

	if err := p.kafkaClient.Producer([]kafka.Message{message}, p.topic); err != nil {
		p.logger.Error("Failed to publish state saved event",
			"error", err,
			"topic", p.topic,
			"account_id", event.AccountID)
		return fmt.Errorf("failed to publish state saved event to topic %s: %w", p.topic, err)
	}

	p.logger.Debug("Published state saved event",
		"topic", p.topic,
		"event_id", eventID,
		"account_id", event.AccountID)

	return nil
}
