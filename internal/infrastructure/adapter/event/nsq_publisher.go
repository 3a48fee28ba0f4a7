package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nsqio/go-nsq"

	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	eventport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/event"
)

// producer is the subset of *nsq.Producer the publisher needs
type producer interface {
	Publish(topic string, body []byte) error
	Stop()
}

// NSQPublisher publishes payment events as JSON to one NSQ topic
type NSQPublisher struct {
	producer producer
	topic    string
	logger   coreport.Logger
}

// NewNSQPublisher connects to nsqd and verifies it answers
func NewNSQPublisher(address, topic string, logger coreport.Logger) (*NSQPublisher, error) {
	cfg := nsq.NewConfig()
	p, err := nsq.NewProducer(address, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}

	if err := p.Ping(); err != nil {
		p.Stop()
		return nil, fmt.Errorf("failed to ping NSQ daemon: %w", err)
	}

	logger.Info("NSQ publisher connected", map[string]any{
		"address": address,
		"topic":   topic,
	})
	return newNSQPublisher(p, topic, logger), nil
}

func newNSQPublisher(p producer, topic string, logger coreport.Logger) *NSQPublisher {
	return &NSQPublisher{producer: p, topic: topic, logger: logger}
}

// Publish sends evt to the configured topic
func (p *NSQPublisher) Publish(ctx context.Context, evt eventport.PaymentEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.producer.Publish(p.topic, body); err != nil {
		return fmt.Errorf("failed to publish %s: %w", evt.Type, err)
	}

	p.logger.Debug("Published event", map[string]any{
		"topic":          p.topic,
		"type":           evt.Type,
		"transaction_id": evt.TransactionID,
		"request_id":     coreport.RequestIDFromContext(ctx),
	})
	return nil
}

// Stop flushes and stops the producer
func (p *NSQPublisher) Stop() {
	p.producer.Stop()
}
