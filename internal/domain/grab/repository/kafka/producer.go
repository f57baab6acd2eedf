// Package kafka contains Kafka repository implementations
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/Ethiocoderss/tgbot/config"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/consts"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/deps"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/dto"
	"github.com/Ethiocoderss/tgbot/internal/domain/grab/entities"
)

// Producer implements deps.DownloadEventProducer
type Producer struct {
	producer sarama.SyncProducer
	logger   zerolog.Logger
}

// NewProducer creates a new Kafka producer that implements
// deps.DownloadEventProducer. When no brokers are configured, event
// publishing is disabled and a noop producer is returned instead.
func NewProducer(cfg *config.KafkaConfig, logger zerolog.Logger) (deps.DownloadEventProducer, error) {
	if !cfg.Enabled() {
		logger.Info().Msg("Kafka brokers not configured, download events disabled")
		return &NoopProducer{}, nil
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Info().Strs("brokers", cfg.Brokers).Msg("Kafka producer initialized successfully")

	return &Producer{
		producer: producer,
		logger:   logger,
	}, nil
}

// SendDownloadCompleted sends a completed-download event to Kafka
func (p *Producer) SendDownloadCompleted(ctx context.Context, requesterID int64, sel entities.Selection, path string) error {
	event := dto.DownloadEvent{
		RequesterID: requesterID,
		VideoID:     sel.VideoID,
		Kind:        sel.Kind,
		Path:        path,
		FinishedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	return p.sendEvent(ctx, consts.TopicDownloadCompleted, event)
}

// SendDownloadFailed sends a failed-download event to Kafka
func (p *Producer) SendDownloadFailed(ctx context.Context, requesterID int64, sel entities.Selection, cause error) error {
	event := dto.DownloadEvent{
		RequesterID: requesterID,
		VideoID:     sel.VideoID,
		Kind:        sel.Kind,
		Error:       cause.Error(),
		FinishedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	return p.sendEvent(ctx, consts.TopicDownloadFailed, event)
}

// sendEvent sends an event to specified Kafka topic
func (p *Producer) sendEvent(ctx context.Context, topic string, event interface{}) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(jsonData),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.logger.Error().Err(err).Str("topic", topic).Msg("Failed to send Kafka message")
		return err
	}

	p.logger.Debug().
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Kafka message sent successfully")

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("Failed to close Kafka producer")
		return err
	}
	p.logger.Info().Msg("Kafka producer closed successfully")
	return nil
}

// NoopProducer is used when event publishing is not configured
type NoopProducer struct{}

// SendDownloadCompleted does nothing
func (*NoopProducer) SendDownloadCompleted(context.Context, int64, entities.Selection, string) error {
	return nil
}

// SendDownloadFailed does nothing
func (*NoopProducer) SendDownloadFailed(context.Context, int64, entities.Selection, error) error {
	return nil
}

// Close does nothing
func (*NoopProducer) Close() error { return nil }
